package models

// Vehicle is the subset of fleet vehicle data maintenance views need.
// Vehicle master data lives elsewhere; schedules only keep a denormalized copy.
type Vehicle struct {
	ID    string `bson:"_id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Type  string `bson:"type" json:"type"` // "ICE" or "EV"
	Make  string `bson:"make" json:"make"`
	Model string `bson:"model" json:"model"`
	Year  int    `bson:"year" json:"year"`
}

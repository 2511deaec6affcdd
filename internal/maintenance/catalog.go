package maintenance

import "github.com/ukydev/fleet-maintenance/internal/models"

// TaskTemplate is a catalog entry the generator turns into concrete tasks.
type TaskTemplate struct {
	Name        string
	Description string
	Type        models.MaintenanceType
	Hours       float64
	Parts       []models.PartRequirement
}

// TaskTemplates is the fixed catalog of maintenance work.
var TaskTemplates = []TaskTemplate{
	{
		Name:        "Oil Change",
		Description: "Replace engine oil and oil filter",
		Type:        models.TypePreventive,
		Hours:       1,
		Parts: []models.PartRequirement{
			{Name: "Engine Oil (5W-30)", Quantity: 5, InStock: true},
			{Name: "Oil Filter", Quantity: 1, InStock: true},
		},
	},
	{
		Name:        "Brake Inspection",
		Description: "Inspect pads, rotors and brake fluid level",
		Type:        models.TypeInspection,
		Hours:       1.5,
	},
	{
		Name:        "Tire Rotation",
		Description: "Rotate tires and check pressure and tread depth",
		Type:        models.TypeRoutine,
		Hours:       0.5,
	},
	{
		Name:        "Air Filter Replacement",
		Description: "Replace engine air filter",
		Type:        models.TypePreventive,
		Hours:       0.5,
		Parts: []models.PartRequirement{
			{Name: "Air Filter", Quantity: 1, InStock: true},
		},
	},
	{
		Name:        "Transmission Fluid Change",
		Description: "Drain and refill transmission fluid",
		Type:        models.TypePreventive,
		Hours:       2,
		Parts: []models.PartRequirement{
			{Name: "Transmission Fluid", Quantity: 4, InStock: true},
		},
	},
	{
		Name:        "Belt Replacement",
		Description: "Replace serpentine belt",
		Type:        models.TypeCorrective,
		Hours:       1.5,
		Parts: []models.PartRequirement{
			{Name: "Serpentine Belt", Quantity: 1, InStock: false},
		},
	},
	{
		Name:        "Battery Replacement",
		Description: "Test and replace the battery",
		Type:        models.TypeCorrective,
		Hours:       0.5,
		Parts: []models.PartRequirement{
			{Name: "Battery", Quantity: 1, InStock: true},
		},
	},
	{
		Name:        "Full Inspection",
		Description: "Multi-point inspection of all major systems",
		Type:        models.TypeInspection,
		Hours:       3,
	},
	{
		Name:        "Safety Check",
		Description: "Lights, horn, wipers, seatbelts and emergency kit",
		Type:        models.TypeSafety,
		Hours:       1,
	},
}

// Fleet is the vehicle roster mock data is spread over.
var Fleet = []models.Vehicle{
	{ID: "v1", Name: "Truck 101", Type: "ICE", Make: "Ford", Model: "F-150", Year: 2021},
	{ID: "v2", Name: "Van 202", Type: "ICE", Make: "Mercedes", Model: "Sprinter", Year: 2022},
	{ID: "v3", Name: "Sedan 303", Type: "EV", Make: "Tesla", Model: "Model 3", Year: 2023},
	{ID: "v4", Name: "Truck 404", Type: "ICE", Make: "Chevrolet", Model: "Silverado", Year: 2020},
	{ID: "v5", Name: "Van 505", Type: "EV", Make: "Ford", Model: "E-Transit", Year: 2024},
}

// Technicians are the assignees mock schedules and history draw from.
var Technicians = []struct{ ID, Name string }{
	{"t1", "John Smith"},
	{"t2", "Maria Garcia"},
	{"t3", "David Chen"},
	{"t4", "Sarah Johnson"},
}

// ServiceLocations are the shops mock data is serviced at.
var ServiceLocations = []string{
	"Main Depot",
	"North Service Center",
	"Downtown Garage",
	"Mobile Unit",
}

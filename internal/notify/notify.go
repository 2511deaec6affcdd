// Package notify delivers maintenance toasts outside the process.
package notify

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/metrics"
)

// LogNotifier writes toasts to the log. Destructive toasts log at warn level.
type LogNotifier struct {
	Entry *log.Entry
}

// NewLogNotifier returns a notifier logging under the "notify" component.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{Entry: log.WithField("component", "notify")}
}

func (n *LogNotifier) Notify(_ context.Context, t maintenance.Toast) {
	entry := n.Entry.WithFields(log.Fields{
		"title":   t.Title,
		"variant": t.Variant,
	})
	if t.Description != "" {
		entry = entry.WithField("description", t.Description)
	}
	if t.Variant == maintenance.ToastDestructive {
		entry.Warn("Toast")
	} else {
		entry.Info("Toast")
	}
	metrics.RecordNotification("log", t.Variant)
}

// Multi fans a toast out to every notifier in order.
type Multi []maintenance.Notifier

func (m Multi) Notify(ctx context.Context, t maintenance.Toast) {
	for _, n := range m {
		n.Notify(ctx, t)
	}
}

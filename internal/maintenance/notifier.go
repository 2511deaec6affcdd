package maintenance

import "context"

// Toast variants.
const (
	ToastDefault     = "default"
	ToastDestructive = "destructive"
)

// Toast is a short user-facing notification about an operation's outcome.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// Notifier delivers toasts to whoever is presenting them.
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, t Toast)

func (f NotifierFunc) Notify(ctx context.Context, t Toast) { f(ctx, t) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Toast) {}

// Package notify is the transient toast surface the workflow reports through.
package notify

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"entregador/internal/latency"
)

// Kind classifies a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3 * time.Second

// Toast is one visible notification.
type Toast struct {
	ID        string
	Kind      Kind
	Title     string
	Message   string
	CreatedAt time.Time
}

// Notifier shows typed toasts. Message is optional.
type Notifier interface {
	ShowSuccess(title string, message ...string)
	ShowError(title string, message ...string)
	ShowWarning(title string, message ...string)
	ShowInfo(title string, message ...string)
}

// Tray keeps the visible toasts and dismisses each after its duration.
type Tray struct {
	mu       sync.Mutex
	toasts   []Toast
	duration time.Duration
	log      *zap.Logger
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// NewTray returns a tray dismissing toasts after d (DefaultDuration when d <= 0).
func NewTray(d time.Duration, log *zap.Logger) *Tray {
	if d <= 0 {
		d = DefaultDuration
	}
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Tray{duration: d, log: log, now: time.Now, ctx: ctx, cancel: cancel}
}

func (t *Tray) ShowSuccess(title string, message ...string) { t.show(KindSuccess, title, message) }
func (t *Tray) ShowError(title string, message ...string)   { t.show(KindError, title, message) }
func (t *Tray) ShowWarning(title string, message ...string) { t.show(KindWarning, title, message) }
func (t *Tray) ShowInfo(title string, message ...string)    { t.show(KindInfo, title, message) }

func (t *Tray) show(kind Kind, title string, message []string) {
	toast := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   strings.Join(message, " "),
		CreatedAt: t.now(),
	}
	t.mu.Lock()
	t.toasts = append(t.toasts, toast)
	t.mu.Unlock()

	fields := []zap.Field{zap.String("toast_id", toast.ID), zap.String("title", title)}
	if toast.Message != "" {
		fields = append(fields, zap.String("message", toast.Message))
	}
	switch kind {
	case KindError:
		t.log.Error("toast", fields...)
	case KindWarning:
		t.log.Warn("toast", fields...)
	default:
		t.log.Info("toast", append(fields, zap.String("kind", string(kind)))...)
	}

	latency.After(t.ctx, t.duration, func() { t.Dismiss(toast.ID) })
}

// Dismiss hides a toast before its timer fires. Unknown ids are ignored.
func (t *Tray) Dismiss(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.toasts {
		if t.toasts[i].ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return
		}
	}
}

// Visible returns the toasts currently shown, oldest first.
func (t *Tray) Visible() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.toasts...)
}

// Close stops pending dismiss timers.
func (t *Tray) Close() {
	t.cancel()
}

// Recorder keeps every toast it receives. Used by tests and headless runs.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) ShowSuccess(title string, message ...string) { r.add(KindSuccess, title, message) }
func (r *Recorder) ShowError(title string, message ...string)   { r.add(KindError, title, message) }
func (r *Recorder) ShowWarning(title string, message ...string) { r.add(KindWarning, title, message) }
func (r *Recorder) ShowInfo(title string, message ...string)    { r.add(KindInfo, title, message) }

func (r *Recorder) add(kind Kind, title string, message []string) {
	r.mu.Lock()
	r.toasts = append(r.toasts, Toast{Kind: kind, Title: title, Message: strings.Join(message, " ")})
	r.mu.Unlock()
}

// Toasts returns everything recorded so far.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

// Count returns how many toasts of kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.toasts {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

package appstate

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastKind selects how a toast is styled.
type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastWarning ToastKind = "warning"
	ToastError   ToastKind = "error"

	maximumVisibleToasts = 20
)

// Toast is a transient notification shown by the web interface.
type Toast struct {
	ID        string    `json:"id"`
	Kind      ToastKind `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Toasts keeps the visible toasts, newest last.
type Toasts struct {
	mutex  sync.Mutex
	items  []Toast
	notify func(source string)
	now    func() time.Time
}

func newToasts(notify func(source string)) *Toasts {
	return &Toasts{items: []Toast{}, notify: notify, now: time.Now}
}

// Show adds a toast and returns it. The oldest toasts are dropped once the limit is reached.
func (toasts *Toasts) Show(kind ToastKind, title string, message string) Toast {
	toast := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: toasts.now().UTC(),
	}

	toasts.mutex.Lock()
	toasts.items = append(toasts.items, toast)
	if overflow := len(toasts.items) - maximumVisibleToasts; overflow > 0 {
		toasts.items = append([]Toast{}, toasts.items[overflow:]...)
	}
	toasts.mutex.Unlock()

	toasts.notify(SourceToasts)
	return toast
}

// Dismiss removes the toast with the given id and reports whether it existed.
func (toasts *Toasts) Dismiss(toastID string) bool {
	toasts.mutex.Lock()
	removed := false
	for index, toast := range toasts.items {
		if toast.ID == toastID {
			toasts.items = append(toasts.items[:index:index], toasts.items[index+1:]...)
			removed = true
			break
		}
	}
	toasts.mutex.Unlock()

	if removed {
		toasts.notify(SourceToasts)
	}
	return removed
}

// List returns the visible toasts, oldest first.
func (toasts *Toasts) List() []Toast {
	toasts.mutex.Lock()
	defer toasts.mutex.Unlock()

	return append([]Toast{}, toasts.items...)
}

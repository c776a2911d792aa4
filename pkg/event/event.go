// Package event is an in-process dispatcher for domain events. Listeners run
// synchronously on the firing goroutine, in registration order.
package event

import (
	"context"
	"sync"
)

// Name identifies an event.
type Name string

// CatalogChanged fires after products or their variants were written.
const CatalogChanged Name = "catalog.changed"

type Handler func(ctx context.Context, payload any)

var (
	mu       sync.RWMutex
	handlers = map[Name][]Handler{}
)

func Listen(name Name, h Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[name] = append(handlers[name], h)
}

// Fire calls every listener of name with payload.
func Fire(ctx context.Context, name Name, payload any) {
	mu.RLock()
	hs := append([]Handler(nil), handlers[name]...)
	mu.RUnlock()

	for _, h := range hs {
		h(ctx, payload)
	}
}

// Flush removes all listeners.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[Name][]Handler{}
}

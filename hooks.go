package geoconf

import (
	"sync"

	"github.com/geoatlas/geoconf/pkg/document"
)

// Hook function types for watcher events
type (
	// UpdateHook is called after the watched document is reloaded with
	// different content. Both arguments are non-nil.
	UpdateHook func(old, new *document.Document)

	// ErrorHook is called when a reload attempt fails. The watcher keeps
	// serving the last good document.
	ErrorHook func(err error)
)

// hooks manages event callbacks for document changes
type hooks struct {
	mu       sync.RWMutex
	onUpdate []UpdateHook
	onError  []ErrorHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnUpdate registers a callback for successful reloads
func (h *hooks) OnUpdate(fn UpdateHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUpdate = append(h.onUpdate, fn)
}

// OnError registers a callback for failed reloads
func (h *hooks) OnError(fn ErrorHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onError = append(h.onError, fn)
}

// triggerUpdate invokes all update hooks in registration order
func (h *hooks) triggerUpdate(oldDoc, newDoc *document.Document) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onUpdate {
		hook(oldDoc, newDoc)
	}
}

// triggerError invokes all error hooks in registration order
func (h *hooks) triggerError(err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onError {
		hook(err)
	}
}

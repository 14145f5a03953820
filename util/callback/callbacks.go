// Package callback provides a registry of callback functions with synchronous, inline dispatch: callbacks run
// on the goroutine calling Notify, before Notify returns.
package callback

import (
	"sync"
)

// Handle is a unique identifier for a registered callback and is used for unregistering.
type Handle int

// Function is the generic callback function.
type Function[T any] func(T)

// Registry manages a collection of callback functions of type T. Registration and unregistration are
// thread-safe. Notify dispatches inline on the calling goroutine; callbacks therefore observe any state
// mutation performed before the Notify call.
type Registry[T any] struct {
	rwmu      sync.RWMutex
	callbacks map[Handle]Function[T]
	handleSeq Handle
}

// NewRegistry creates an empty callback registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		callbacks: make(map[Handle]Function[T]),
	}
}

// Register adds a new callback to the registry and returns a unique handle that can be used to unregister the
// callback later.
func (c *Registry[T]) Register(callback Function[T]) (handle Handle) {
	c.rwmu.Lock()
	handle = c.handleSeq
	c.callbacks[handle] = callback
	c.handleSeq++
	c.rwmu.Unlock()
	return handle
}

// Unregister removes a callback from the registry using its handle.
func (c *Registry[T]) Unregister(handle Handle) {
	c.rwmu.Lock()
	delete(c.callbacks, handle)
	c.rwmu.Unlock()
}

// Len returns the number of registered callbacks.
func (c *Registry[T]) Len() int {
	c.rwmu.RLock()
	defer c.rwmu.RUnlock()
	return len(c.callbacks)
}

// Notify calls all registered callbacks with the given value, inline on the calling goroutine. The callbacks
// are invoked outside the registry lock, so a callback may register or unregister callbacks itself.
func (c *Registry[T]) Notify(val T) {
	c.rwmu.RLock()
	cbs := make([]Function[T], 0, len(c.callbacks))
	for _, cb := range c.callbacks {
		cbs = append(cbs, cb)
	}
	c.rwmu.RUnlock()

	for _, cb := range cbs {
		cb(val)
	}
}

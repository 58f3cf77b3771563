// Copyright (c) 2024 - The Eventware authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package local provides the in-process event dispatcher.
package local

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	ew "github.com/cloudway/eventware"
)

// registration holds all handlers subscribed with the same pattern. The
// handler order within a registration is incidental; the canonical order is
// computed on resolve.
type registration struct {
	pattern  ew.Pattern
	handlers []ew.EventHandler
}

// Dispatcher is an in-process event dispatcher that invokes subscribed
// handlers synchronously on the dispatching goroutine. Resolved chains are
// cached per event name; any subscribe or unsubscribe invalidates exactly
// the cached names the mutated pattern matches, so a cached chain is always
// identical to a fresh resolve.
//
// All registry access is guarded by a single RW mutex. Handler invocation
// happens strictly outside of it, so callbacks may subscribe, unsubscribe
// and dispatch freely.
type Dispatcher struct {
	registry   map[string]*registration
	cache      map[string][]ew.EventHandler
	registryMu sync.RWMutex
	logger     zerolog.Logger
}

// Option is an option setter used to configure creation.
type Option func(*Dispatcher)

// WithLogger sets a logger for dispatch warnings. Without it logging is
// disabled.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(options ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: map[string]*registration{},
		cache:    map[string][]ew.EventHandler{},
		logger:   zerolog.Nop(),
	}

	for _, option := range options {
		option(d)
	}

	return d
}

// Observe implements the Observe method of the eventware.EventDispatcher interface.
func (d *Dispatcher) Observe(pattern string, priority int, callback ew.EventCallback) (ew.EventHandler, error) {
	if callback == nil {
		return nil, ew.ErrMissingCallback
	}

	p, err := ew.NewPattern(pattern)
	if err != nil {
		return nil, err
	}

	h := ew.NewObservingHandler(p, priority, callback)
	if err := d.Subscribe(h); err != nil {
		return nil, err
	}

	return h, nil
}

// Intercept implements the Intercept method of the eventware.EventDispatcher interface.
func (d *Dispatcher) Intercept(pattern string, priority int, callback ew.EventCallback) (ew.EventHandler, error) {
	if callback == nil {
		return nil, ew.ErrMissingCallback
	}

	p, err := ew.NewPattern(pattern)
	if err != nil {
		return nil, err
	}

	h := ew.NewInterceptingHandler(p, priority, callback)
	if err := d.Subscribe(h); err != nil {
		return nil, err
	}

	return h, nil
}

// Implement implements the Implement method of the eventware.EventDispatcher interface.
func (d *Dispatcher) Implement(pattern string, priority int, callback ew.ImplementingCallback) (ew.EventHandler, error) {
	if callback == nil {
		return nil, ew.ErrMissingCallback
	}

	p, err := ew.NewPattern(pattern)
	if err != nil {
		return nil, err
	}

	h := ew.NewImplementingHandler(p, priority, callback)
	if err := d.Subscribe(h); err != nil {
		return nil, err
	}

	return h, nil
}

// Subscribe implements the Subscribe method of the eventware.EventDispatcher interface.
func (d *Dispatcher) Subscribe(handler ew.EventHandler) error {
	if handler == nil {
		return ew.ErrMissingHandler
	}

	if handler.Dispatcher() != nil {
		return ew.ErrHandlerAlreadySubscribed
	}

	d.registryMu.Lock()
	defer d.registryMu.Unlock()

	key := handler.EventPattern().String()

	reg, ok := d.registry[key]
	if !ok {
		reg = &registration{pattern: handler.EventPattern()}
		d.registry[key] = reg
	}

	reg.handlers = append(reg.handlers, handler)
	handler.SetDispatcher(d)

	d.invalidate(reg.pattern)

	return nil
}

// Unsubscribe implements the Unsubscribe method of the eventware.EventDispatcher interface.
func (d *Dispatcher) Unsubscribe(handler ew.EventHandler) error {
	if handler == nil {
		return ew.ErrMissingHandler
	}

	d.registryMu.Lock()
	defer d.registryMu.Unlock()

	key := handler.EventPattern().String()

	reg, ok := d.registry[key]
	if !ok {
		return ew.ErrNotSubscribed
	}

	for i, other := range reg.handlers {
		if other.ID() == handler.ID() {
			reg.handlers = append(reg.handlers[:i], reg.handlers[i+1:]...)
			if len(reg.handlers) == 0 {
				delete(d.registry, key)
			}

			handler.SetDispatcher(nil)

			d.invalidate(reg.pattern)

			return nil
		}
	}

	return ew.ErrNotSubscribed
}

// HandlersForEvent implements the HandlersForEvent method of the
// eventware.EventDispatcher interface.
func (d *Dispatcher) HandlersForEvent(event string) ([]ew.EventHandler, error) {
	d.registryMu.RLock()
	if chain, ok := d.cache[event]; ok {
		d.registryMu.RUnlock()

		return chain, nil
	}
	d.registryMu.RUnlock()

	d.registryMu.Lock()
	defer d.registryMu.Unlock()

	// Another dispatch may have resolved the chain in between.
	if chain, ok := d.cache[event]; ok {
		return chain, nil
	}

	chain, err := d.resolve(event)
	if err != nil {
		return nil, err
	}

	d.cache[event] = chain

	return chain, nil
}

// Dispatch implements the Dispatch method of the eventware.EventDispatcher interface.
func (d *Dispatcher) Dispatch(ctx context.Context, sender interface{}, event string, params ...interface{}) (interface{}, error) {
	handlers, err := d.HandlersForEvent(event)
	if err != nil {
		return nil, err
	}

	if len(handlers) == 0 {
		d.logger.Warn().Str("event", event).Msg("event has no subscribed handlers")

		return nil, nil
	}

	// Only the first handler is invoked here; walking the rest of the
	// chain is entirely up to the handlers.
	args := &ew.EventArgs{Event: event, Sender: sender}

	return handlers[0].Invoke(ctx, args, params...)
}

// resolve computes the chain for an event name from the registry: the union
// of the handlers of every matching pattern, sorted ascending by priority.
// The caller must hold the write lock.
func (d *Dispatcher) resolve(event string) ([]ew.EventHandler, error) {
	var chain []ew.EventHandler

	for _, reg := range d.registry {
		if reg.pattern.Match(event) {
			chain = append(chain, reg.handlers...)
		}
	}

	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].Priority() < chain[j].Priority()
	})

	for i := 1; i < len(chain); i++ {
		if chain[i].Priority() != chain[i-1].Priority() {
			continue
		}

		conflict := &ew.HandlerConflictError{
			Event:    event,
			Priority: chain[i].Priority(),
		}
		for _, h := range chain {
			if h.Priority() == conflict.Priority {
				conflict.Handlers = append(conflict.Handlers, h)
			}
		}

		return nil, conflict
	}

	return chain, nil
}

// invalidate drops every cached chain whose event name the pattern matches.
// Cached names the pattern cannot match are unaffected by the mutation and
// stay cached. The caller must hold the write lock.
func (d *Dispatcher) invalidate(pattern ew.Pattern) {
	for event := range d.cache {
		if pattern.Match(event) {
			delete(d.cache, event)
		}
	}
}

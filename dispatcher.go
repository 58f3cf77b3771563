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

package eventware

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingHandler is when a nil handler is subscribed or unsubscribed.
var ErrMissingHandler = errors.New("missing event handler")

// ErrMissingCallback is when a handler is registered with a nil callback.
var ErrMissingCallback = errors.New("missing event callback")

// ErrMissingDispatcher is when an operation needs a dispatcher but none is
// attached, for example a detached handler resolving its successor or a
// dispatch helper finding no dispatcher on its target.
var ErrMissingDispatcher = errors.New("missing event dispatcher")

// ErrNotSubscribed is when unsubscribing a handler that is not present in
// the registry. Note that EventHandler.Unsubscribe on an already detached
// handler is a no-op instead; only the registry-level call is strict, since
// silent success there would mask a double-unsubscribe bug.
var ErrNotSubscribed = errors.New("handler not subscribed")

// ErrHandlerAlreadySubscribed is when subscribing a handler that is already
// attached to a dispatcher.
var ErrHandlerAlreadySubscribed = errors.New("handler is already subscribed")

// EventDispatcher maintains the registry of event handlers and starts the
// invocation chain for dispatched events. Implementations must resolve
// chains in ascending priority order and treat equal priorities within one
// chain as an error.
type EventDispatcher interface {
	// Observe subscribes an observing handler and returns it.
	Observe(pattern string, priority int, callback EventCallback) (EventHandler, error)

	// Intercept subscribes an intercepting handler and returns it.
	Intercept(pattern string, priority int, callback EventCallback) (EventHandler, error)

	// Implement subscribes an implementing handler and returns it.
	Implement(pattern string, priority int, callback ImplementingCallback) (EventHandler, error)

	// Subscribe registers an already constructed handler.
	Subscribe(handler EventHandler) error

	// Unsubscribe removes a previously subscribed handler. It returns
	// ErrNotSubscribed when the handler is not in the registry.
	Unsubscribe(handler EventHandler) error

	// HandlersForEvent returns all handlers whose pattern matches the
	// event name, sorted ascending by priority. It returns a
	// *HandlerConflictError when two matching handlers share a priority.
	HandlersForEvent(event string) ([]EventHandler, error)

	// Dispatch raises an event: it resolves the chain for the event name
	// and invokes its first handler, which drives the rest of the chain.
	// Dispatching an event without any subscribed handlers returns
	// (nil, nil).
	Dispatch(ctx context.Context, sender interface{}, event string, params ...interface{}) (interface{}, error)
}

// HandlerConflictError is returned when two or more handlers matching the
// same event resolve to the same priority. Every priority of a chain must
// have exactly one handler.
type HandlerConflictError struct {
	// Event is the event name whose chain could not be resolved.
	Event string
	// Priority is the colliding priority.
	Priority int
	// Handlers are the handlers that share the priority.
	Handlers []EventHandler
}

// Error implements the Error method of the error interface.
func (e *HandlerConflictError) Error() string {
	ids := make([]string, len(e.Handlers))
	for i, h := range e.Handlers {
		ids[i] = fmt.Sprintf("%s %q (%s)", h.Role(), h.EventPattern(), h.ID())
	}

	return fmt.Sprintf("event %q has multiple handlers at priority %d: %s",
		e.Event, e.Priority, strings.Join(ids, ", "))
}

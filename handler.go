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

	"github.com/cloudway/eventware/uuid"
)

// HandlerRole is the chain-walk policy of an event handler.
type HandlerRole string

const (
	// ObservingRole handlers are notified but can neither change the
	// result nor stop propagation.
	ObservingRole HandlerRole = "observing"
	// InterceptingRole handlers receive the next handler in the chain and
	// fully control whether and how propagation continues.
	InterceptingRole HandlerRole = "intercepting"
	// ImplementingRole handlers provide the authoritative result of an
	// event, unaffected by anything downstream.
	ImplementingRole HandlerRole = "implementing"
)

// String implements the String method of the fmt.Stringer interface.
func (r HandlerRole) String() string {
	return string(r)
}

// EventCallback is the callback signature for observing and intercepting
// handlers. The args value is shared by the whole chain and mutated in
// place; params are the dispatch arguments passed through unchanged.
type EventCallback func(ctx context.Context, args *EventArgs, params ...interface{}) (interface{}, error)

// ImplementingCallback is the callback signature for implementing handlers.
// It receives only the dispatch arguments, never the EventArgs.
type ImplementingCallback func(ctx context.Context, params ...interface{}) (interface{}, error)

// EventHandler is a single unit of subscription: a pattern, a priority, a
// callback and a chain-walk policy. A handler belongs to at most one
// dispatcher at a time.
type EventHandler interface {
	// ID returns a unique ID for this handler, used to locate it by
	// identity within a resolved chain.
	ID() uuid.UUID

	// EventPattern returns the pattern the handler is subscribed with.
	EventPattern() Pattern

	// Priority returns the chain position of the handler. Handlers
	// matching the same event are invoked in ascending priority order.
	Priority() int

	// Role returns the chain-walk policy of the handler.
	Role() HandlerRole

	// Invoke runs the handler's callback and, depending on the role,
	// continues the chain. Only the first handler of a chain is invoked
	// by the dispatcher; every further step is taken by the handlers
	// themselves.
	Invoke(ctx context.Context, args *EventArgs, params ...interface{}) (interface{}, error)

	// Dispatcher returns the dispatcher the handler is subscribed to, or
	// nil when detached.
	Dispatcher() EventDispatcher

	// SetDispatcher sets or clears the back-reference to the owning
	// dispatcher. It is called by EventDispatcher.Subscribe and
	// Unsubscribe and should not be used directly.
	SetDispatcher(EventDispatcher)

	// Unsubscribe removes the handler from its current dispatcher. It is
	// a no-op when the handler is already detached.
	Unsubscribe() error
}

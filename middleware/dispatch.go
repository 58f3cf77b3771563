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

package middleware

import (
	"context"

	ew "github.com/cloudway/eventware"
)

// DispatcherHolder is a value that exposes the event dispatcher it
// dispatches through, typically the host application or provider object.
type DispatcherHolder interface {
	// Events returns the dispatcher to raise events on.
	Events() ew.EventDispatcher
}

// Dispatch raises an event on behalf of holder, with holder as the sender.
// The fallback is the host's own implementation of the operation. When no
// handler is subscribed for the event it is called directly, so a host
// method keeps working before any middleware is installed for it. When the
// chain already contains an implementing handler that one is authoritative
// and the fallback is not called. Otherwise the chain consists of observers
// and interceptors only, and the fallback joins it as its implementer for
// the duration of the call, so the event still does its work unless an
// interceptor stops the chain. A holder without a dispatcher is a
// configuration error and fails with ErrMissingDispatcher.
func Dispatch(ctx context.Context, holder DispatcherHolder, event string, fallback ew.ImplementingCallback, params ...interface{}) (interface{}, error) {
	if holder == nil {
		return nil, ew.ErrMissingDispatcher
	}

	d := holder.Events()
	if d == nil {
		return nil, ew.ErrMissingDispatcher
	}

	handlers, err := d.HandlersForEvent(event)
	if err != nil {
		return nil, err
	}

	for _, h := range handlers {
		if h.Role() == ew.ImplementingRole {
			return d.Dispatch(ctx, holder, event, params...)
		}
	}

	if fallback == nil {
		return nil, ew.ErrMissingCallback
	}

	if len(handlers) == 0 {
		return fallback(ctx, params...)
	}

	p, err := ew.NewPattern(event)
	if err != nil {
		return nil, err
	}

	// Event names are literal, so the chain resolved above is exactly the
	// chain the transient handler joins, right after its last handler.
	h := ew.NewImplementingHandler(p, handlers[len(handlers)-1].Priority()+1, fallback)
	if err := d.Subscribe(h); err != nil {
		return nil, err
	}
	defer h.Unsubscribe()

	return d.Dispatch(ctx, holder, event, params...)
}

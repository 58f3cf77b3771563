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
)

// ObservingHandler is an event handler that is notified of matching events
// but cannot influence the chain: its callback's return value is discarded
// and the successor is always invoked. A callback error still unwinds the
// chain, as any ordinary call would.
type ObservingHandler struct {
	*HandlerBase

	callback EventCallback
}

// NewObservingHandler creates an ObservingHandler.
func NewObservingHandler(pattern Pattern, priority int, callback EventCallback) *ObservingHandler {
	h := &ObservingHandler{
		HandlerBase: newHandlerBase(pattern, priority),
		callback:    callback,
	}
	h.self = h

	return h
}

// Role implements the Role method of the EventHandler interface.
func (h *ObservingHandler) Role() HandlerRole {
	return ObservingRole
}

// Invoke implements the Invoke method of the EventHandler interface.
func (h *ObservingHandler) Invoke(ctx context.Context, args *EventArgs, params ...interface{}) (interface{}, error) {
	if h.callback == nil {
		return nil, ErrMissingCallback
	}

	// Observers never receive chain control.
	args.NextHandler = nil

	next, err := h.NextHandler(args.Event)
	if err != nil {
		return nil, err
	}

	if _, err := h.callback(ctx, args, params...); err != nil {
		return nil, err
	}

	if next == nil {
		return nil, nil
	}

	return next.Invoke(ctx, args, params...)
}

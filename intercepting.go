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

// InterceptingHandler is an event handler whose callback receives the next
// handler of the chain through the EventArgs and fully controls propagation:
// it may invoke the successor, short-circuit the chain or transform the
// downstream result. A callback that never invokes args.NextHandler
// truncates the chain silently.
type InterceptingHandler struct {
	*HandlerBase

	callback EventCallback
}

// NewInterceptingHandler creates an InterceptingHandler.
func NewInterceptingHandler(pattern Pattern, priority int, callback EventCallback) *InterceptingHandler {
	h := &InterceptingHandler{
		HandlerBase: newHandlerBase(pattern, priority),
		callback:    callback,
	}
	h.self = h

	return h
}

// Role implements the Role method of the EventHandler interface.
func (h *InterceptingHandler) Role() HandlerRole {
	return InterceptingRole
}

// Invoke implements the Invoke method of the EventHandler interface.
func (h *InterceptingHandler) Invoke(ctx context.Context, args *EventArgs, params ...interface{}) (interface{}, error) {
	if h.callback == nil {
		return nil, ErrMissingCallback
	}

	next, err := h.NextHandler(args.Event)
	if err != nil {
		return nil, err
	}

	// The successor is handed over even when nil, so the callback can
	// tell "last in chain" apart from "not an interceptor".
	args.NextHandler = next

	result, err := h.callback(ctx, args, params...)

	args.NextHandler = nil

	return result, err
}

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

// ImplementingHandler is an event handler that provides the authoritative
// result of an event. Its callback receives only the dispatch parameters,
// never the EventArgs. Downstream handlers still run and can observe the
// result through EventArgs.Result, but cannot change what the implementer
// returns.
type ImplementingHandler struct {
	*HandlerBase

	callback ImplementingCallback
}

// NewImplementingHandler creates an ImplementingHandler.
func NewImplementingHandler(pattern Pattern, priority int, callback ImplementingCallback) *ImplementingHandler {
	h := &ImplementingHandler{
		HandlerBase: newHandlerBase(pattern, priority),
		callback:    callback,
	}
	h.self = h

	return h
}

// Role implements the Role method of the EventHandler interface.
func (h *ImplementingHandler) Role() HandlerRole {
	return ImplementingRole
}

// Invoke implements the Invoke method of the EventHandler interface.
func (h *ImplementingHandler) Invoke(ctx context.Context, args *EventArgs, params ...interface{}) (interface{}, error) {
	if h.callback == nil {
		return nil, ErrMissingCallback
	}

	result, err := h.callback(ctx, params...)
	if err != nil {
		return nil, err
	}

	next, err := h.NextHandler(args.Event)
	if err != nil {
		return nil, err
	}

	if next != nil {
		prevNext, prevResult := args.NextHandler, args.Result
		args.NextHandler = next
		args.Result = result

		// The downstream result is discarded; only errors unwind.
		_, err := next.Invoke(ctx, args, params...)

		args.NextHandler, args.Result = prevNext, prevResult

		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

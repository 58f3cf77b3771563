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
	"github.com/cloudway/eventware/uuid"
)

// HandlerBase is an implementation of the subscription bookkeeping shared by
// all handler roles, to be used by composition. The embedding handler is
// recorded at construction so that Unsubscribe and successor lookup act on
// the full handler, not the base.
type HandlerBase struct {
	id         uuid.UUID
	pattern    Pattern
	priority   int
	dispatcher EventDispatcher
	self       EventHandler
}

func newHandlerBase(pattern Pattern, priority int) *HandlerBase {
	return &HandlerBase{
		id:       uuid.New(),
		pattern:  pattern,
		priority: priority,
	}
}

// ID implements the ID method of the EventHandler interface.
func (h *HandlerBase) ID() uuid.UUID {
	return h.id
}

// EventPattern implements the EventPattern method of the EventHandler interface.
func (h *HandlerBase) EventPattern() Pattern {
	return h.pattern
}

// Priority implements the Priority method of the EventHandler interface.
func (h *HandlerBase) Priority() int {
	return h.priority
}

// Dispatcher implements the Dispatcher method of the EventHandler interface.
func (h *HandlerBase) Dispatcher() EventDispatcher {
	return h.dispatcher
}

// SetDispatcher implements the SetDispatcher method of the EventHandler interface.
func (h *HandlerBase) SetDispatcher(d EventDispatcher) {
	h.dispatcher = d
}

// Unsubscribe implements the Unsubscribe method of the EventHandler
// interface. Unsubscribing an already detached handler is a no-op.
func (h *HandlerBase) Unsubscribe() error {
	if h.dispatcher == nil {
		return nil
	}

	if err := h.dispatcher.Unsubscribe(h.self); err != nil {
		return err
	}

	h.dispatcher = nil

	return nil
}

// NextHandler resolves the chain for the event at invoke time and returns
// the handler directly after this one, or nil when this handler is the last.
// The chain is resolved freshly on every call since subscriptions can change
// between dispatches; the handler locates itself by ID, not by value.
func (h *HandlerBase) NextHandler(event string) (EventHandler, error) {
	if h.dispatcher == nil {
		return nil, ErrMissingDispatcher
	}

	chain, err := h.dispatcher.HandlersForEvent(event)
	if err != nil {
		return nil, err
	}

	for i, handler := range chain {
		if handler.ID() == h.id {
			if i < len(chain)-1 {
				return chain[i+1], nil
			}

			return nil, nil
		}
	}

	return nil, nil
}

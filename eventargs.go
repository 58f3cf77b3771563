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

// EventArgs carries information about a single dispatch down the handler
// chain. It is created by Dispatch and passed by pointer to every handler in
// turn; handlers mutate it in place to carry chain-control state.
type EventArgs struct {
	// Event is the concrete name of the dispatched event.
	Event string

	// Sender is the object that raised the event.
	Sender interface{}

	// NextHandler is the successor of the handler whose callback is
	// currently running. It is only set for intercepting callbacks, which
	// are responsible for invoking it (or deliberately not invoking it),
	// and while an implementing handler hands control to its successor.
	NextHandler EventHandler

	// Result is the return value of the nearest upstream implementing
	// handler. It is only set while the downstream part of the chain runs
	// and is restored when the implementing handler unwinds.
	Result interface{}

	// Values carries free-form data between handlers of the same chain.
	// It is lazily allocated by Set.
	Values map[string]interface{}
}

// Set stores a value to be shared with downstream handlers.
func (a *EventArgs) Set(key string, value interface{}) {
	if a.Values == nil {
		a.Values = map[string]interface{}{}
	}

	a.Values[key] = value
}

// Get returns a value previously stored with Set, or nil.
func (a *EventArgs) Get(key string) interface{} {
	return a.Values[key]
}

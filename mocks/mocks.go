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

// Package mocks provides mocked event callbacks, useful in testing.
package mocks

import (
	"context"

	"github.com/jinzhu/copier"

	ew "github.com/cloudway/eventware"
)

// Invocation is one recorded callback invocation.
type Invocation struct {
	// Args is a snapshot of the EventArgs at invocation time. The chain
	// mutates the original in place, so assertions need a copy.
	Args ew.EventArgs
	// Params are the dispatch parameters the callback received.
	Params []interface{}
}

// Recorder is a mocked event callback, useful in testing. It records every
// invocation and returns the configured result or error.
type Recorder struct {
	Invocations []Invocation

	// Result is returned from the callback.
	Result interface{}
	// Err, if set, is returned from the callback instead of Result.
	Err error
}

// Callback is an eventware.EventCallback for observing and intercepting
// handlers.
func (r *Recorder) Callback(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
	var snapshot ew.EventArgs
	if err := copier.Copy(&snapshot, args); err != nil {
		return nil, err
	}

	r.Invocations = append(r.Invocations, Invocation{Args: snapshot, Params: params})

	if r.Err != nil {
		return nil, r.Err
	}

	return r.Result, nil
}

// Implementation is an eventware.ImplementingCallback for implementing
// handlers.
func (r *Recorder) Implementation(ctx context.Context, params ...interface{}) (interface{}, error) {
	r.Invocations = append(r.Invocations, Invocation{Params: params})

	if r.Err != nil {
		return nil, r.Err
	}

	return r.Result, nil
}

// Invoked reports if the recorder was invoked at least once.
func (r *Recorder) Invoked() bool {
	return len(r.Invocations) > 0
}

// Events returns the event names of all recorded invocations, in order.
func (r *Recorder) Events() []string {
	events := make([]string, len(r.Invocations))
	for i, inv := range r.Invocations {
		events[i] = inv.Args.Event
	}

	return events
}

// Reset forgets all recorded invocations.
func (r *Recorder) Reset() {
	r.Invocations = nil
}

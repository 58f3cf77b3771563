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

// Package tracing provides middleware that adds tracing spans around
// dispatched events.
package tracing

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	ew "github.com/cloudway/eventware"
	"github.com/cloudway/eventware/middleware"
)

// Middleware wraps the handler chain of matching events in an opentracing
// span. It should be subscribed at a priority below every handler it is
// meant to measure, so the span covers the whole downstream chain.
type Middleware struct {
	*middleware.Group

	priority int
}

// NewMiddleware creates tracing middleware for events matching the pattern.
func NewMiddleware(pattern string, priority int) *Middleware {
	m := &Middleware{priority: priority}
	m.Group = middleware.NewGroup(
		middleware.Intercept(pattern, priority, m.traceEvent),
	)

	return m
}

func (m *Middleware) traceEvent(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
	opName := fmt.Sprintf("eventware.Dispatch(%s)", args.Event)
	sp, ctx := opentracing.StartSpanFromContext(ctx, opName)

	var (
		result interface{}
		err    error
	)

	// The downstream chain runs with the span on its context, so nested
	// dispatches become child spans.
	if next := args.NextHandler; next != nil {
		result, err = next.Invoke(ctx, args, params...)
	}

	if err != nil {
		ext.LogError(sp, err)
	}

	sp.SetTag("ew.event", args.Event)
	sp.SetTag("ew.sender", fmt.Sprintf("%T", args.Sender))
	sp.SetTag("ew.priority", m.priority)

	sp.Finish()

	return result, err
}

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

// Package logging provides middleware that logs dispatched events.
package logging

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	ew "github.com/cloudway/eventware"
	"github.com/cloudway/eventware/middleware"
)

// Middleware logs events matching a pattern. The observing variant logs
// each event as it passes by; the timing variant wraps the remainder of the
// chain and additionally logs its duration and outcome.
type Middleware struct {
	*middleware.Group

	logger zerolog.Logger
}

// NewMiddleware creates middleware that observes events matching the
// pattern at the given priority and logs each one. Being an observer it can
// never change a dispatch result.
func NewMiddleware(logger zerolog.Logger, pattern string, priority int) *Middleware {
	m := &Middleware{logger: logger}
	m.Group = middleware.NewGroup(
		middleware.Observe(pattern, priority, m.logEvent),
	)

	return m
}

// NewTimingMiddleware creates middleware that intercepts events matching
// the pattern and logs each one together with the time the downstream chain
// took. It passes results and errors through untouched.
func NewTimingMiddleware(logger zerolog.Logger, pattern string, priority int) *Middleware {
	m := &Middleware{logger: logger}
	m.Group = middleware.NewGroup(
		middleware.Intercept(pattern, priority, m.timeEvent),
	)

	return m
}

func (m *Middleware) logEvent(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
	ev := m.logger.Info().
		Str("event", args.Event).
		Str("sender", fmt.Sprintf("%T", args.Sender)).
		Int("params", len(params))
	if args.Result != nil {
		ev = ev.Interface("result", args.Result)
	}
	ev.Msg("event dispatched")

	return nil, nil
}

func (m *Middleware) timeEvent(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
	next := args.NextHandler
	if next == nil {
		m.logger.Info().
			Str("event", args.Event).
			Msg("event dispatched to empty chain")

		return nil, nil
	}

	start := time.Now()

	result, err := next.Invoke(ctx, args, params...)

	ev := m.logger.Info().
		Str("event", args.Event).
		Str("sender", fmt.Sprintf("%T", args.Sender)).
		Dur("took", time.Since(start))
	if err != nil {
		ev = ev.AnErr("error", err)
	}
	ev.Msg("event handled")

	return result, err
}

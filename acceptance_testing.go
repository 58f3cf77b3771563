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
	"errors"
	"testing"

	"github.com/kr/pretty"
)

// AcceptanceTest is an acceptance test that all implementations of the
// EventDispatcher interface should pass. It verifies the ordering, conflict,
// glob matching, cache consistency and chain walking guarantees of the
// interface. Usage, with a test already having the dispatcher package
// imported:
//
//	func TestDispatcher(t *testing.T) {
//		eventware.AcceptanceTest(t, func() eventware.EventDispatcher {
//			return NewDispatcher()
//		})
//	}
func AcceptanceTest(t *testing.T, newDispatcher func() EventDispatcher) {
	ctx := context.Background()

	noop := func(ctx context.Context, args *EventArgs, params ...interface{}) (interface{}, error) {
		return nil, nil
	}

	// Dispatching an event without any subscribed handler returns nil and
	// is not an error.
	d := newDispatcher()
	result, err := d.Dispatch(ctx, nil, "unknown.event")
	if err != nil {
		t.Error("there should be no error:", err)
	}
	if result != nil {
		t.Error("the result should be nil:", result)
	}

	// Handlers matching the same event are resolved in ascending priority
	// order regardless of subscription order or pattern.
	d = newDispatcher()
	h3, err := d.Observe("*", 3000, noop)
	if err != nil {
		t.Fatal("there should be no error:", err)
	}
	h1, err := d.Observe("a.b.*", 1000, noop)
	if err != nil {
		t.Fatal("there should be no error:", err)
	}
	h2, err := d.Observe("a.b.c", 2000, noop)
	if err != nil {
		t.Fatal("there should be no error:", err)
	}
	chain, err := d.HandlersForEvent("a.b.c")
	if err != nil {
		t.Fatal("there should be no error:", err)
	}
	if len(chain) != 3 ||
		chain[0].ID() != h1.ID() ||
		chain[1].ID() != h2.ID() ||
		chain[2].ID() != h3.ID() {
		t.Error("the chain should be sorted by priority:")
		t.Log(pretty.Sprint(chain))
	}

	// Two handlers matching the same event with equal priority are a
	// conflict, reported when the chain is resolved.
	d = newDispatcher()
	if _, err := d.Observe("x.y", 1000, noop); err != nil {
		t.Fatal("there should be no error:", err)
	}
	if _, err := d.Intercept("x.*", 1000, noop); err != nil {
		t.Fatal("there should be no error:", err)
	}
	if _, err := d.HandlersForEvent("x.y"); err == nil {
		t.Error("there should be a handler conflict error")
	} else {
		var conflictErr *HandlerConflictError
		if !errors.As(err, &conflictErr) {
			t.Error("the error should be a HandlerConflictError:", err)
		} else {
			if conflictErr.Event != "x.y" {
				t.Error("the conflict event should be correct:", conflictErr.Event)
			}
			if conflictErr.Priority != 1000 {
				t.Error("the conflict priority should be correct:", conflictErr.Priority)
			}
			if len(conflictErr.Handlers) != 2 {
				t.Error("the conflict should name both handlers:", len(conflictErr.Handlers))
			}
		}
	}
	if _, err := d.Dispatch(ctx, nil, "x.y"); err == nil {
		t.Error("dispatching a conflicting event should fail")
	}
	// An event only one of the handlers matches is still fine.
	if _, err := d.HandlersForEvent("x.z"); err != nil {
		t.Error("there should be no error:", err)
	}

	// Unsubscribe is idempotent on the handler but strict on the
	// registry.
	d = newDispatcher()
	h, err := d.Observe("a.b", 1000, noop)
	if err != nil {
		t.Fatal("there should be no error:", err)
	}
	if err := h.Unsubscribe(); err != nil {
		t.Error("there should be no error:", err)
	}
	if h.Dispatcher() != nil {
		t.Error("the handler should be detached")
	}
	if err := h.Unsubscribe(); err != nil {
		t.Error("a second handler unsubscribe should be a no-op:", err)
	}
	if err := d.Unsubscribe(h); !errors.Is(err, ErrNotSubscribed) {
		t.Error("the error should be ErrNotSubscribed:", err)
	}

	// Glob semantics: anchored to the whole name, "*" crosses segments.
	d = newDispatcher()
	if _, err := d.Observe("a.b.*", 1000, noop); err != nil {
		t.Fatal("there should be no error:", err)
	}
	for _, event := range []string{"a.b.c", "a.b.c.d"} {
		if chain, err := d.HandlersForEvent(event); err != nil || len(chain) != 1 {
			t.Errorf("the pattern should match %q: %v", event, err)
		}
	}
	if chain, err := d.HandlersForEvent("a.c"); err != nil || len(chain) != 0 {
		t.Error("the pattern should not match a.c")
	}
	d = newDispatcher()
	if _, err := d.Observe("*", 1, noop); err != nil {
		t.Fatal("there should be no error:", err)
	}
	for _, event := range []string{"a", "a.b", "provider.storage.volumes.list"} {
		if chain, err := d.HandlersForEvent(event); err != nil || len(chain) != 1 {
			t.Errorf("a wildcard pattern should match %q: %v", event, err)
		}
	}
	d = newDispatcher()
	if _, err := d.Observe("a.?", 1, noop); err != nil {
		t.Fatal("there should be no error:", err)
	}
	if _, err := d.Observe("[bc].x", 2, noop); err != nil {
		t.Fatal("there should be no error:", err)
	}
	cases := map[string]int{
		"a.b":  1,
		"a.bc": 0,
		"b.x":  1,
		"c.x":  1,
		"d.x":  0,
	}
	for event, count := range cases {
		if chain, err := d.HandlersForEvent(event); err != nil || len(chain) != count {
			t.Errorf("event %q should have %d handlers, got %d (%v)", event, count, len(chain), err)
		}
	}

	// Cache consistency: resolutions made before a mutation never leak
	// into resolutions made after it.
	d = newDispatcher()
	first, err := d.Observe("c.*", 100, noop)
	if err != nil {
		t.Fatal("there should be no error:", err)
	}
	if chain, _ := d.HandlersForEvent("c.d"); len(chain) != 1 {
		t.Error("the chain should have one handler:", len(chain))
	}
	second, err := d.Observe("c.d", 200, noop)
	if err != nil {
		t.Fatal("there should be no error:", err)
	}
	chain, err = d.HandlersForEvent("c.d")
	if err != nil {
		t.Fatal("there should be no error:", err)
	}
	if len(chain) != 2 || chain[0].ID() != first.ID() || chain[1].ID() != second.ID() {
		t.Error("the chain should contain both handlers in priority order:")
		t.Log(pretty.Sprint(chain))
	}
	if err := first.Unsubscribe(); err != nil {
		t.Error("there should be no error:", err)
	}
	chain, err = d.HandlersForEvent("c.d")
	if err != nil {
		t.Fatal("there should be no error:", err)
	}
	if len(chain) != 1 || chain[0].ID() != second.ID() {
		t.Error("the chain should contain only the remaining handler:")
		t.Log(pretty.Sprint(chain))
	}

	// An observer can never change the result of a dispatch.
	d = newDispatcher()
	if _, err := d.Implement("r.s", 500, func(ctx context.Context, params ...interface{}) (interface{}, error) {
		return "value", nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	observer, err := d.Observe("r.s", 600, func(ctx context.Context, args *EventArgs, params ...interface{}) (interface{}, error) {
		return "ignored", nil
	})
	if err != nil {
		t.Fatal("there should be no error:", err)
	}
	result, err = d.Dispatch(ctx, nil, "r.s")
	if err != nil {
		t.Error("there should be no error:", err)
	}
	if result != "value" {
		t.Error("the result should come from the implementer:", result)
	}
	if err := observer.Unsubscribe(); err != nil {
		t.Error("there should be no error:", err)
	}
	withoutObserver, err := d.Dispatch(ctx, nil, "r.s")
	if err != nil {
		t.Error("there should be no error:", err)
	}
	if withoutObserver != result {
		t.Error("removing the observer should not change the result:", withoutObserver)
	}

	// Full chain walk: an interceptor continuing the chain, an
	// implementer providing the result and an observer seeing it.
	d = newDispatcher()
	var order []string
	if _, err := d.Intercept("x.y", 900, func(ctx context.Context, args *EventArgs, params ...interface{}) (interface{}, error) {
		order = append(order, "interceptor")
		if args.NextHandler == nil {
			t.Error("the interceptor should have a successor")

			return nil, nil
		}

		return args.NextHandler.Invoke(ctx, args, params...)
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	if _, err := d.Implement("x.y", 950, func(ctx context.Context, params ...interface{}) (interface{}, error) {
		order = append(order, "implementer")

		return "hello", nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	if _, err := d.Observe("x.y", 1000, func(ctx context.Context, args *EventArgs, params ...interface{}) (interface{}, error) {
		order = append(order, "observer")
		if args.Result != "hello" {
			t.Error("the observer should see the implementer result:", args.Result)
		}
		if args.NextHandler != nil {
			t.Error("the observer should not receive chain control")
		}

		return nil, nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	result, err = d.Dispatch(ctx, "sender", "x.y")
	if err != nil {
		t.Error("there should be no error:", err)
	}
	if result != "hello" {
		t.Error("the result should be the implementer result:", result)
	}
	if len(order) != 3 || order[0] != "interceptor" || order[1] != "implementer" || order[2] != "observer" {
		t.Error("the invocation order should be interceptor, implementer, observer:", order)
	}
}

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

package eventware_test

import (
	"context"
	"errors"
	"testing"

	ew "github.com/cloudway/eventware"
	"github.com/cloudway/eventware/dispatcher/local"
	"github.com/cloudway/eventware/mocks"
)

func TestObservingHandlerNeverReceivesChainControl(t *testing.T) {
	d := local.NewDispatcher()
	recorder := &mocks.Recorder{Result: "discarded"}

	if _, err := d.Observe("a.b", 100, recorder.Callback); err != nil {
		t.Fatal("there should be no error:", err)
	}
	implemented := &mocks.Recorder{Result: "done"}
	if _, err := d.Implement("a.b", 200, implemented.Implementation); err != nil {
		t.Fatal("there should be no error:", err)
	}

	result, err := d.Dispatch(context.Background(), t, "a.b", "param")
	if err != nil {
		t.Error("there should be no error:", err)
	}
	if result != "done" {
		t.Error("the observer result should be discarded:", result)
	}

	if len(recorder.Invocations) != 1 {
		t.Fatal("the observer should have been invoked once:", len(recorder.Invocations))
	}
	inv := recorder.Invocations[0]
	if inv.Args.NextHandler != nil {
		t.Error("the observer should not see a next handler")
	}
	if inv.Args.Event != "a.b" {
		t.Error("the observer should see the event name:", inv.Args.Event)
	}
	if len(inv.Params) != 1 || inv.Params[0] != "param" {
		t.Error("the observer should see the dispatch params:", inv.Params)
	}
	if !implemented.Invoked() {
		t.Error("the observer should have continued the chain")
	}
}

func TestObservingHandlerErrorUnwinds(t *testing.T) {
	d := local.NewDispatcher()
	observerErr := errors.New("observer failed")

	if _, err := d.Observe("a.b", 100, func(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
		return nil, observerErr
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	downstream := &mocks.Recorder{}
	if _, err := d.Observe("a.b", 200, downstream.Callback); err != nil {
		t.Fatal("there should be no error:", err)
	}

	if _, err := d.Dispatch(context.Background(), nil, "a.b"); !errors.Is(err, observerErr) {
		t.Error("the error should be the observer error:", err)
	}
	if downstream.Invoked() {
		t.Error("a failing observer should stop the chain")
	}
}

func TestInterceptingHandlerShortCircuit(t *testing.T) {
	d := local.NewDispatcher()

	if _, err := d.Intercept("a.b", 100, func(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
		// Deliberately not invoking args.NextHandler.
		return "short-circuited", nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	downstream := &mocks.Recorder{}
	if _, err := d.Observe("a.b", 200, downstream.Callback); err != nil {
		t.Fatal("there should be no error:", err)
	}

	result, err := d.Dispatch(context.Background(), nil, "a.b")
	if err != nil {
		t.Error("there should be no error:", err)
	}
	if result != "short-circuited" {
		t.Error("the interceptor result should be returned:", result)
	}
	if downstream.Invoked() {
		t.Error("the chain should have been truncated")
	}
}

func TestInterceptingHandlerTransformsResult(t *testing.T) {
	d := local.NewDispatcher()

	if _, err := d.Intercept("a.b", 100, func(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
		result, err := args.NextHandler.Invoke(ctx, args, params...)
		if err != nil {
			return nil, err
		}

		return result.(string) + " world", nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	if _, err := d.Implement("a.b", 200, func(ctx context.Context, params ...interface{}) (interface{}, error) {
		return "hello", nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}

	result, err := d.Dispatch(context.Background(), nil, "a.b")
	if err != nil {
		t.Error("there should be no error:", err)
	}
	if result != "hello world" {
		t.Error("the interceptor should transform the result:", result)
	}
}

func TestInterceptingHandlerLastInChain(t *testing.T) {
	d := local.NewDispatcher()
	recorder := &mocks.Recorder{}

	if _, err := d.Intercept("a.b", 100, recorder.Callback); err != nil {
		t.Fatal("there should be no error:", err)
	}

	if _, err := d.Dispatch(context.Background(), nil, "a.b"); err != nil {
		t.Error("there should be no error:", err)
	}

	if len(recorder.Invocations) != 1 {
		t.Fatal("the interceptor should have been invoked once")
	}
	// The successor is handed over explicitly, as nil for the last
	// handler.
	if recorder.Invocations[0].Args.NextHandler != nil {
		t.Error("the last interceptor should see a nil next handler")
	}
}

func TestImplementingHandlerResultIsAuthoritative(t *testing.T) {
	d := local.NewDispatcher()

	if _, err := d.Implement("a.b", 100, func(ctx context.Context, params ...interface{}) (interface{}, error) {
		return "authoritative", nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	observer := &mocks.Recorder{Result: "other"}
	if _, err := d.Observe("a.b", 200, observer.Callback); err != nil {
		t.Fatal("there should be no error:", err)
	}

	result, err := d.Dispatch(context.Background(), nil, "a.b")
	if err != nil {
		t.Error("there should be no error:", err)
	}
	if result != "authoritative" {
		t.Error("the implementer result should win:", result)
	}
	if len(observer.Invocations) != 1 {
		t.Fatal("the observer should have been invoked once")
	}
	if observer.Invocations[0].Args.Result != "authoritative" {
		t.Error("the observer should see the implementer result:",
			observer.Invocations[0].Args.Result)
	}
}

func TestImplementingHandlerRestoresArgs(t *testing.T) {
	d := local.NewDispatcher()

	if _, err := d.Intercept("a.b", 50, func(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
		result, err := args.NextHandler.Invoke(ctx, args, params...)
		if err != nil {
			return nil, err
		}
		// The implementer downstream must have restored the args on
		// unwind.
		if args.Result != nil {
			t.Error("the result should be restored after the implementer:", args.Result)
		}

		return result, nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	if _, err := d.Implement("a.b", 100, func(ctx context.Context, params ...interface{}) (interface{}, error) {
		return "temp", nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	observer := &mocks.Recorder{}
	if _, err := d.Observe("a.b", 200, observer.Callback); err != nil {
		t.Fatal("there should be no error:", err)
	}

	if _, err := d.Dispatch(context.Background(), nil, "a.b"); err != nil {
		t.Error("there should be no error:", err)
	}
	if observer.Invocations[0].Args.Result != "temp" {
		t.Error("the observer should see the in-flight result:",
			observer.Invocations[0].Args.Result)
	}
}

func TestImplementingHandlerDownstreamError(t *testing.T) {
	d := local.NewDispatcher()
	downstreamErr := errors.New("downstream failed")

	if _, err := d.Implement("a.b", 100, func(ctx context.Context, params ...interface{}) (interface{}, error) {
		return "result", nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	if _, err := d.Observe("a.b", 200, func(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
		return nil, downstreamErr
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}

	if _, err := d.Dispatch(context.Background(), nil, "a.b"); !errors.Is(err, downstreamErr) {
		t.Error("a downstream error should unwind through the implementer:", err)
	}
}

func TestHandlerUnsubscribeDetached(t *testing.T) {
	h := ew.NewObservingHandler(ew.MustPattern("a.b"), 100, func(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
		return nil, nil
	})

	if err := h.Unsubscribe(); err != nil {
		t.Error("unsubscribing a detached handler should be a no-op:", err)
	}
}

func TestHandlerInvokeDetached(t *testing.T) {
	h := ew.NewObservingHandler(ew.MustPattern("a.b"), 100, func(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
		return nil, nil
	})

	args := &ew.EventArgs{Event: "a.b"}
	if _, err := h.Invoke(context.Background(), args); !errors.Is(err, ew.ErrMissingDispatcher) {
		t.Error("the error should be ErrMissingDispatcher:", err)
	}
}

func TestHandlerRoles(t *testing.T) {
	p := ew.MustPattern("a")
	cb := func(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
		return nil, nil
	}
	impl := func(ctx context.Context, params ...interface{}) (interface{}, error) {
		return nil, nil
	}

	if r := ew.NewObservingHandler(p, 1, cb).Role(); r != ew.ObservingRole {
		t.Error("the role should be observing:", r)
	}
	if r := ew.NewInterceptingHandler(p, 1, cb).Role(); r != ew.InterceptingRole {
		t.Error("the role should be intercepting:", r)
	}
	if r := ew.NewImplementingHandler(p, 1, impl).Role(); r != ew.ImplementingRole {
		t.Error("the role should be implementing:", r)
	}
}

func TestEventArgsValues(t *testing.T) {
	d := local.NewDispatcher()

	if _, err := d.Observe("a.b", 100, func(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
		args.Set("seen", true)

		return nil, nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}
	var seen interface{}
	if _, err := d.Observe("a.b", 200, func(ctx context.Context, args *ew.EventArgs, params ...interface{}) (interface{}, error) {
		seen = args.Get("seen")

		return nil, nil
	}); err != nil {
		t.Fatal("there should be no error:", err)
	}

	if _, err := d.Dispatch(context.Background(), nil, "a.b"); err != nil {
		t.Error("there should be no error:", err)
	}
	if seen != true {
		t.Error("the downstream handler should see the stored value:", seen)
	}
}

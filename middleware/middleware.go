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

// Package middleware groups event handlers into installable units and
// manages the set of installed groups for a dispatcher.
package middleware

import (
	"errors"
	"fmt"

	ew "github.com/cloudway/eventware"
)

// ErrAlreadyInstalled is when installing middleware that is already bound to
// a dispatcher.
var ErrAlreadyInstalled = errors.New("middleware is already installed")

// ErrNotInstalled is when operating on middleware that is not installed.
var ErrNotInstalled = errors.New("middleware is not installed")

// Descriptor declaratively describes one event handler of a middleware
// group: which pattern and priority to subscribe with, the chain-walk role
// and the callback to bind. Descriptors are plain data and can be declared
// statically; they are only turned into live handlers on install.
type Descriptor struct {
	// Pattern is the event pattern to subscribe with.
	Pattern string
	// Priority is the chain position of the handler.
	Priority int
	// Role selects the handler kind built on install.
	Role ew.HandlerRole
	// Callback is the bound callback for observing and intercepting
	// handlers.
	Callback ew.EventCallback
	// Implementation is the bound callback for implementing handlers.
	Implementation ew.ImplementingCallback
}

// Observe creates a Descriptor for an observing handler.
func Observe(pattern string, priority int, callback ew.EventCallback) Descriptor {
	return Descriptor{
		Pattern:  pattern,
		Priority: priority,
		Role:     ew.ObservingRole,
		Callback: callback,
	}
}

// Intercept creates a Descriptor for an intercepting handler.
func Intercept(pattern string, priority int, callback ew.EventCallback) Descriptor {
	return Descriptor{
		Pattern:  pattern,
		Priority: priority,
		Role:     ew.InterceptingRole,
		Callback: callback,
	}
}

// Implement creates a Descriptor for an implementing handler.
func Implement(pattern string, priority int, callback ew.ImplementingCallback) Descriptor {
	return Descriptor{
		Pattern:        pattern,
		Priority:       priority,
		Role:           ew.ImplementingRole,
		Implementation: callback,
	}
}

// build compiles the descriptor into a live, not yet subscribed handler.
func (desc Descriptor) build() (ew.EventHandler, error) {
	p, err := ew.NewPattern(desc.Pattern)
	if err != nil {
		return nil, err
	}

	switch desc.Role {
	case ew.ObservingRole:
		if desc.Callback == nil {
			return nil, ew.ErrMissingCallback
		}

		return ew.NewObservingHandler(p, desc.Priority, desc.Callback), nil
	case ew.InterceptingRole:
		if desc.Callback == nil {
			return nil, ew.ErrMissingCallback
		}

		return ew.NewInterceptingHandler(p, desc.Priority, desc.Callback), nil
	case ew.ImplementingRole:
		if desc.Implementation == nil {
			return nil, ew.ErrMissingCallback
		}

		return ew.NewImplementingHandler(p, desc.Priority, desc.Implementation), nil
	default:
		return nil, fmt.Errorf("unknown handler role %q", desc.Role)
	}
}

// Described is a plain object carrying declarative handler metadata. The
// Manager converts it into a Group on Add.
type Described interface {
	// EventHandlerDescriptors returns the handler descriptors of this
	// middleware.
	EventHandlerDescriptors() []Descriptor
}

// Group is a middleware that owns a set of event handlers built from
// descriptors, subscribing all of them on install and unsubscribing all of
// them on uninstall. The group's position in any event chain is governed
// entirely by handler priorities, so uninstalling and re-installing a group
// restores its original chain positions relative to other installed groups.
type Group struct {
	descriptors []Descriptor
	handlers    []ew.EventHandler
	events      ew.EventDispatcher
}

// NewGroup creates a Group from handler descriptors.
func NewGroup(descriptors ...Descriptor) *Group {
	return &Group{descriptors: descriptors}
}

// Install implements the Install method of the eventware.Middleware
// interface. A failing subscription unwinds the handlers installed so far,
// leaving the dispatcher as it was.
func (g *Group) Install(d ew.EventDispatcher) error {
	if d == nil {
		return ew.ErrMissingDispatcher
	}

	if g.events != nil {
		return ErrAlreadyInstalled
	}

	g.events = d

	for _, desc := range g.descriptors {
		h, err := desc.build()
		if err == nil {
			err = d.Subscribe(h)
		}

		if err != nil {
			g.Uninstall()

			return err
		}

		g.handlers = append(g.handlers, h)
	}

	return nil
}

// AddHandlers subscribes hand-authored handlers and transfers their
// ownership to the group, so they are unsubscribed on uninstall together
// with the descriptor-built ones.
func (g *Group) AddHandlers(handlers ...ew.EventHandler) error {
	if g.events == nil {
		return ErrNotInstalled
	}

	for _, h := range handlers {
		if err := g.events.Subscribe(h); err != nil {
			return err
		}

		g.handlers = append(g.handlers, h)
	}

	return nil
}

// Handlers returns the handlers currently subscribed on behalf of this
// group.
func (g *Group) Handlers() []ew.EventHandler {
	handlers := make([]ew.EventHandler, len(g.handlers))
	copy(handlers, g.handlers)

	return handlers
}

// Uninstall implements the Uninstall method of the eventware.Middleware
// interface.
func (g *Group) Uninstall() error {
	var err error
	for _, h := range g.handlers {
		if uerr := h.Unsubscribe(); uerr != nil && err == nil {
			err = uerr
		}
	}

	g.handlers = nil
	g.events = nil

	return err
}

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

package middleware

import (
	"fmt"
	"sync"

	ew "github.com/cloudway/eventware"
	"github.com/cloudway/eventware/dispatcher/local"
)

// Manager tracks the middleware installed on a single event dispatcher.
type Manager struct {
	events      ew.EventDispatcher
	installed   []ew.Middleware
	installedMu sync.Mutex
}

// NewManager creates a Manager for a dispatcher. A nil dispatcher creates a
// new local one.
func NewManager(d ew.EventDispatcher) *Manager {
	if d == nil {
		d = local.NewDispatcher()
	}

	return &Manager{events: d}
}

// Events implements the Events method of the eventware.MiddlewareManager interface.
func (m *Manager) Events() ew.EventDispatcher {
	return m.events
}

// Add implements the Add method of the eventware.MiddlewareManager
// interface. It accepts an eventware.Middleware as is and wraps a Described
// value into a Group; anything else is an error.
func (m *Manager) Add(v interface{}) (ew.Middleware, error) {
	var mw ew.Middleware

	switch t := v.(type) {
	case ew.Middleware:
		mw = t
	case Described:
		mw = NewGroup(t.EventHandlerDescriptors()...)
	default:
		return nil, fmt.Errorf("cannot add middleware of type %T", v)
	}

	if err := mw.Install(m.events); err != nil {
		return nil, err
	}

	m.installedMu.Lock()
	defer m.installedMu.Unlock()
	m.installed = append(m.installed, mw)

	return mw, nil
}

// Remove implements the Remove method of the eventware.MiddlewareManager interface.
func (m *Manager) Remove(mw ew.Middleware) error {
	m.installedMu.Lock()
	defer m.installedMu.Unlock()

	for i, installed := range m.installed {
		if installed != mw {
			continue
		}

		if err := mw.Uninstall(); err != nil {
			return err
		}

		m.installed = append(m.installed[:i], m.installed[i+1:]...)

		return nil
	}

	return ErrNotInstalled
}

// Installed returns the currently installed middleware, in install order.
func (m *Manager) Installed() []ew.Middleware {
	m.installedMu.Lock()
	defer m.installedMu.Unlock()

	installed := make([]ew.Middleware, len(m.installed))
	copy(installed, m.installed)

	return installed
}

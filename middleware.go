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

// Middleware groups related event handlers so that they can be subscribed
// and unsubscribed as a unit. A LoggingMiddleware may for example register
// handlers to log data before and after calls, a resource tracking
// middleware may record every object that is created or deleted.
type Middleware interface {
	// Install binds the middleware to a dispatcher and subscribes all of
	// its handlers. It is called when the middleware is added to a
	// MiddlewareManager.
	Install(d EventDispatcher) error

	// Uninstall unsubscribes all handlers owned by this middleware and
	// detaches it from the dispatcher.
	Uninstall() error
}

// MiddlewareManager tracks the set of installed middleware against a single
// event dispatcher.
type MiddlewareManager interface {
	// Events returns the event dispatcher the middleware is installed
	// on, for direct subscription and dispatch by application code.
	Events() EventDispatcher

	// Add installs middleware and tracks it. Besides a Middleware it
	// accepts any value with declarative handler metadata that the
	// implementation knows how to convert. The installed middleware is
	// returned as a handle for Remove.
	Add(v interface{}) (Middleware, error)

	// Remove uninstalls previously added middleware and forgets it.
	Remove(m Middleware) error
}

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

// Package eventware is an in-process event dispatch and middleware toolkit.
//
// Components publish named events through an EventDispatcher; other
// components subscribe to them by exact name or glob pattern and are invoked
// as a single chain ordered by priority. Three handler roles exist: observers
// that are only notified, interceptors that control whether and how the chain
// continues, and implementers whose return value is authoritative. Related
// handlers can be grouped into a Middleware and installed or uninstalled as a
// unit through a MiddlewareManager.
//
// Dispatch is synchronous: a call to Dispatch does not return until the part
// of the handler chain that was actually walked has completed on the caller's
// goroutine.
package eventware

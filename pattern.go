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
	"fmt"

	"github.com/gobwas/glob"
)

// Pattern names one or more events, either by an exact dot-segmented name
// such as "provider.storage.volumes.list" or by a glob over such names, for
// example "provider.storage.*". Glob syntax supports "*" for any run of
// characters (including dots), "?" for a single character and bracket
// classes like "[ab]" or "[!0-9]". A pattern matches only when the entire
// event name matches.
type Pattern struct {
	text string
	glob glob.Glob
}

// NewPattern compiles a pattern. An invalid glob returns an error.
func NewPattern(text string) (Pattern, error) {
	g, err := glob.Compile(text)
	if err != nil {
		return Pattern{}, &InvalidPatternError{Pattern: text, Err: err}
	}

	return Pattern{text: text, glob: g}, nil
}

// MustPattern compiles a pattern and panics on invalid globs. It simplifies
// static pattern tables in tests and examples.
func MustPattern(text string) Pattern {
	p, err := NewPattern(text)
	if err != nil {
		panic(err)
	}

	return p
}

// Match reports if the event name matches the pattern.
func (p Pattern) Match(event string) bool {
	if p.glob == nil {
		return false
	}

	return p.glob.Match(event)
}

// String implements the String method of the fmt.Stringer interface.
func (p Pattern) String() string {
	return p.text
}

// IsZero reports if the pattern is the uncompiled zero value.
func (p Pattern) IsZero() bool {
	return p.glob == nil
}

// InvalidPatternError is returned when an event pattern cannot be compiled.
type InvalidPatternError struct {
	// Pattern is the pattern text that failed to compile.
	Pattern string
	// Err is the underlying compile error.
	Err error
}

// Error implements the Error method of the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid event pattern %q: %s", e.Pattern, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

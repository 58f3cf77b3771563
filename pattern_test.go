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
	"errors"
	"testing"
)

func TestPatternExact(t *testing.T) {
	p := MustPattern("provider.storage.volumes.list")

	if !p.Match("provider.storage.volumes.list") {
		t.Error("a literal pattern should match itself")
	}

	if p.Match("provider.storage.volumes") {
		t.Error("a literal pattern should not match a prefix")
	}

	if p.Match("provider.storage.volumes.list.extra") {
		t.Error("a literal pattern should not match an extension")
	}
}

func TestPatternWildcard(t *testing.T) {
	p := MustPattern("provider.storage.*")

	if !p.Match("provider.storage.volumes") {
		t.Error("the pattern should match a single extra segment")
	}

	if !p.Match("provider.storage.volumes.list") {
		t.Error("a wildcard should cross segment boundaries")
	}

	if p.Match("provider.compute.instances") {
		t.Error("the pattern should not match a different branch")
	}

	if p.Match("pre.provider.storage.x") {
		t.Error("matching should be anchored, not a substring search")
	}

	all := MustPattern("*")
	for _, event := range []string{"a", "a.b", "a.b.c.d"} {
		if !all.Match(event) {
			t.Errorf("a lone wildcard should match %q", event)
		}
	}
}

func TestPatternSingleChar(t *testing.T) {
	p := MustPattern("a.?")

	if !p.Match("a.b") {
		t.Error("the pattern should match a single character")
	}

	if p.Match("a.bc") {
		t.Error("the pattern should not match two characters")
	}
}

func TestPatternBracketClass(t *testing.T) {
	p := MustPattern("node-[0-9].up")

	if !p.Match("node-3.up") {
		t.Error("the pattern should match a digit")
	}

	if p.Match("node-x.up") {
		t.Error("the pattern should not match a letter")
	}

	neg := MustPattern("[!a].x")
	if neg.Match("a.x") {
		t.Error("the negated class should not match")
	}
	if !neg.Match("b.x") {
		t.Error("the negated class should match")
	}
}

func TestPatternInvalid(t *testing.T) {
	_, err := NewPattern("a.[")
	if err == nil {
		t.Fatal("there should be a compile error")
	}

	var patternErr *InvalidPatternError
	if !errors.As(err, &patternErr) {
		t.Error("the error should be an InvalidPatternError:", err)
	}
	if patternErr.Pattern != "a.[" {
		t.Error("the error should carry the pattern text:", patternErr.Pattern)
	}
}

func TestPatternZero(t *testing.T) {
	var p Pattern

	if !p.IsZero() {
		t.Error("the zero pattern should report as zero")
	}

	if p.Match("a") {
		t.Error("the zero pattern should match nothing")
	}
}

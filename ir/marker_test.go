// This file is part of ngaro - https://github.com/db47h/ngaro
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

package ir_test

import (
	"strings"
	"testing"

	"tapestat/ir"
	"tapestat/tape"
)

// S5: Sequence([Right, AssertAbsolute(1, "one")]) succeeds on a fresh
// tape; changing the assertion to position 0 fails with a diagnostic
// naming the expected and actual positions and the supplied comment.
func TestScenarioAssertPosition(t *testing.T) {
	item := ir.Sequence(ir.Direct(tape.Right), ir.AssertPosition(1, "one"))
	if _, err := runItem(t, item); err != nil {
		t.Fatalf("expected the correct assertion to pass, got: %v", err)
	}

	item = ir.Sequence(ir.Direct(tape.Right), ir.AssertPosition(0, "one"))
	_, err := runItem(t, item)
	if err == nil {
		t.Fatal("expected the wrong assertion to fail")
	}
	msg := err.Error()
	for _, want := range []string{"expected: 0", "actual  : 1", "one"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected diagnostic to contain %q, got: %s", want, msg)
		}
	}
}

func TestMarkerDuplicateAndMissing(t *testing.T) {
	item := ir.Sequence(ir.AddMarker("m"), ir.AddMarker("m"))
	if _, err := runItem(t, item); err == nil {
		t.Fatal("expected duplicate marker to fail")
	}

	item = ir.Sequence(ir.RemoveMarker("m"))
	if _, err := runItem(t, item); err == nil {
		t.Fatal("expected removing an unknown marker to fail")
	}

	item = ir.Sequence(ir.AddMarker("m"), ir.Direct(tape.Right), ir.AssertMarkerOffset("m", 1, "off by one"))
	if _, err := runItem(t, item); err != nil {
		t.Fatalf("expected marker offset assertion to pass, got: %v", err)
	}
}

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

package ir

import (
	"github.com/pkg/errors"

	"tapestat/tape"
)

// AddMarker records the tape head's current position under name, for later
// AssertMarkerOffset calls. Placing a name that is already in use is a
// fatal runtime error, not a silent overwrite.
func AddMarker(name string) Item {
	site := callSite(2)
	return Custom(func(_ tape.TapeView, position int, markers map[string]tape.Marker) error {
		if _, exists := markers[name]; exists {
			return errors.Errorf("marker %q already exists", name)
		}
		markers[name] = tape.Marker{Position: position, Site: site}
		return nil
	})
}

// RemoveMarker deletes name from the marker table. Removing an unknown
// name is fatal.
func RemoveMarker(name string) Item {
	return Custom(func(_ tape.TapeView, _ int, markers map[string]tape.Marker) error {
		if _, exists := markers[name]; !exists {
			return errors.Errorf("marker %q does not exist", name)
		}
		delete(markers, name)
		return nil
	})
}

// AssertPosition is fatal if the tape head is not at cell when this action
// runs. comment is folded into the failure diagnostic.
func AssertPosition(cell int, comment string) Item {
	site := callSite(2)
	return Custom(func(view tape.TapeView, position int, _ map[string]tape.Marker) error {
		if position != cell {
			return errors.Errorf(
				"mismatched position at %s\nexpected: %d\nactual  : %d\nsource  : %s\n%s",
				site, cell, position, comment, view.Render(position))
		}
		return nil
	})
}

// AssertMarkerOffset is fatal if name is unknown, or if the tape head is
// not at marker.Position+offset. The offset is added as a signed int; a
// negative offset that reaches before cell 0 can never match the head's
// position, so such an assertion always fails.
func AssertMarkerOffset(name string, offset int, comment string) Item {
	site := callSite(2)
	return Custom(func(view tape.TapeView, position int, markers map[string]tape.Marker) error {
		m, exists := markers[name]
		if !exists {
			return errors.Errorf("marker %q does not exist (asserted at %s)", name, site)
		}
		expected := m.Position + offset
		if position != expected {
			return errors.Errorf(
				"mismatched marker %q@%d\nplaced at: %s (pos %d)\nexpected : %d\nfound    : %d\nsource   : %s\nasserted : %s\n%s",
				name, offset, m.Site, m.Position, expected, position, comment, site, view.Render(position))
		}
		return nil
	})
}

// Halt unconditionally fails the program when reached, printing the tape
// state. Used by the numeric macro family's depth guard to give a clear
// diagnostic for arithmetic overflow.
func Halt(message string) Item {
	site := callSite(2)
	return Custom(func(view tape.TapeView, position int, _ map[string]tape.Marker) error {
		return errors.Errorf("%s (halted at %s)\n%s", message, site, view.Render(position))
	})
}

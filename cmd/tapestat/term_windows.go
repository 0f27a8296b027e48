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

package main

import "github.com/pkg/errors"

// termEnableRaw is a no-op on Windows: raw terminal mode is POSIX-only, the
// same limitation cmd/retro's term_windows.go documents for setRawIO. The
// -step debugger falls back to reading a line (Enter to advance) instead.
func termEnableRaw() (restore func(), err error) {
	return nil, errors.New("raw IO not supported")
}

// Copyright 2025 The gVisor Authors.
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

//go:build unix

package iovec

import "testing"

func TestBuild(t *testing.T) {
	bufs := [][]byte{[]byte("abc"), {}, nil, []byte("de")}
	iovecs, n := Build(bufs, nil)
	if n != 5 {
		t.Errorf("Build length = %d, want 5", n)
	}
	if len(iovecs) != 2 {
		t.Fatalf("Build produced %d iovecs, want 2", len(iovecs))
	}
	if iovecs[0].Base != &bufs[0][0] || iovecs[1].Base != &bufs[3][0] {
		t.Errorf("Build iovecs do not reference caller buffers")
	}
}

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

package iovec

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func TestAdvance(t *testing.T) {
	for _, test := range []struct {
		name string
		bufs [][]byte
		n    int
		want [][]byte
	}{
		{
			name: "zero",
			bufs: [][]byte{[]byte("ab"), []byte("cd")},
			n:    0,
			want: [][]byte{[]byte("ab"), []byte("cd")},
		},
		{
			name: "zero keeps leading empty",
			bufs: [][]byte{{}, []byte("ab")},
			n:    0,
			want: [][]byte{{}, []byte("ab")},
		},
		{
			name: "partial first",
			bufs: [][]byte{[]byte("abc"), []byte("de")},
			n:    1,
			want: [][]byte{[]byte("bc"), []byte("de")},
		},
		{
			name: "exact first",
			bufs: [][]byte{[]byte("abc"), []byte("de")},
			n:    3,
			want: [][]byte{[]byte("de")},
		},
		{
			name: "into second",
			bufs: [][]byte{[]byte("abc"), []byte("de")},
			n:    4,
			want: [][]byte{[]byte("e")},
		},
		{
			name: "drain",
			bufs: [][]byte{[]byte("abc"), []byte("de")},
			n:    5,
			want: [][]byte{},
		},
		{
			name: "skips interior empty",
			bufs: [][]byte{[]byte("ab"), {}, []byte("cd")},
			n:    3,
			want: [][]byte{[]byte("d")},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := Advance(Clone(test.bufs), test.n)
			if diff := cmp.Diff(test.want, got, cmp.Comparer(bytes.Equal)); len(got) != len(test.want) || diff != "" {
				t.Errorf("Advance(%q, %d) = %q, want %q", test.bufs, test.n, got, test.want)
			}
		})
	}
}

func TestAdvanceDoesNotTouchBytes(t *testing.T) {
	a := []byte("hello")
	b := []byte("world")
	bufs := [][]byte{a, b}
	rest := Advance(Clone(bufs), 7)
	rest[0][0] = 'R'
	if got := string(b); got != "woRld" {
		t.Errorf("advanced buffer does not alias caller memory: %q", got)
	}
	if got := string(bufs[0]); got != "hello" {
		t.Errorf("original list modified: %q", got)
	}
}

func TestAdvancePanicsPastEnd(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Advance past end did not panic")
		}
	}()
	Advance([][]byte{[]byte("ab")}, 3)
}

func TestSkipEmpty(t *testing.T) {
	bufs := [][]byte{nil, {}, []byte("a"), {}}
	got := SkipEmpty(bufs)
	if len(got) != 2 || string(got[0]) != "a" {
		t.Errorf("SkipEmpty(%q) = %q", bufs, got)
	}
	if got := SkipEmpty([][]byte{{}, nil}); len(got) != 0 {
		t.Errorf("SkipEmpty of all-empty list = %q, want empty", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty([][]byte{{}, []byte("x"), []byte("y")}); string(got) != "x" {
		t.Errorf("FirstNonEmpty = %q, want x", got)
	}
	if got := FirstNonEmpty([][]byte{{}, nil}); got != nil {
		t.Errorf("FirstNonEmpty of empty list = %q, want nil", got)
	}
}

func TestTruncate(t *testing.T) {
	bufs := make([][]byte, 5)
	if got := len(Truncate(bufs, 3)); got != 3 {
		t.Errorf("Truncate to 3 kept %d", got)
	}
	if got := len(Truncate(bufs, 8)); got != 5 {
		t.Errorf("Truncate to 8 kept %d", got)
	}
}

func genBufs(t *rapid.T) [][]byte {
	return rapid.SliceOfN(rapid.SliceOfN(rapid.Byte(), 0, 16), 0, 8).Draw(t, "bufs")
}

func TestAdvanceProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bufs := genBufs(t)
		total := NumBytes(bufs)
		n := rapid.IntRange(0, total).Draw(t, "n")

		flat := bytes.Join(bufs, nil)
		rest := Advance(Clone(bufs), n)
		if got := NumBytes(rest); got != total-n {
			t.Fatalf("NumBytes after Advance(%d) = %d, want %d", n, got, total-n)
		}
		if got := bytes.Join(rest, nil); !bytes.Equal(got, flat[n:]) {
			t.Fatalf("remaining bytes = %q, want %q", got, flat[n:])
		}

		drained := Advance(rest, total-n)
		if NumBytes(drained) != 0 || len(SkipEmpty(drained)) != 0 {
			t.Fatalf("list not drained: %q", drained)
		}

		same := Advance(Clone(bufs), 0)
		if len(same) != len(bufs) {
			t.Fatalf("Advance(0) changed span count: %d != %d", len(same), len(bufs))
		}
		for i := range bufs {
			if !bytes.Equal(same[i], bufs[i]) {
				t.Fatalf("Advance(0) changed span %d", i)
			}
		}
	})
}

/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ring

import "testing"

func TestBoundedPushEvictsOldest(t *testing.T) {
	r := NewBounded[int](3)
	r.Push(1)
	r.Push(2)
	r.Push(3)
	r.Push(4)

	got := r.Values()
	want := []int{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBoundedUnderCapacityKeepsAll(t *testing.T) {
	r := NewBounded[string](5)
	r.Push("a")
	r.Push("b")
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestZeroCapacityRetainsNothing(t *testing.T) {
	r := NewBounded[int](0)
	r.Push(1)
	r.Push(2)
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
	if got := r.Values(); len(got) != 0 {
		t.Fatalf("Values() = %v, want empty", got)
	}
}

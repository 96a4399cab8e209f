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

// Ring is a slice-backed bounded buffer: Push appends a value and, once
// the ring is at capacity, evicts the oldest value to make room — the
// shape a capped history list (e.g. "keep only the last N entries")
// needs.
type Ring[V any] struct {
	items []Item[V]
	cap   int
}

// Item is the element stored in the Ring
type Item[V any] struct {
	value V
	idx   int
}

// NewBounded returns an empty ring that holds at most capacity values,
// evicting the oldest on overflow. A capacity of 0 holds no values at
// all: every Push is a no-op.
func NewBounded[V any](capacity int) *Ring[V] {
	if capacity < 0 {
		capacity = 0
	}
	return &Ring[V]{cap: capacity}
}

// Push appends v, evicting the oldest value first if the ring is
// already at capacity. On a zero-capacity ring, Push never stores
// anything.
func (r *Ring[V]) Push(v V) {
	if r.cap == 0 {
		return
	}
	if len(r.items) >= r.cap {
		r.items = r.items[1:]
	}
	r.items = append(r.items, Item[V]{value: v, idx: len(r.items)})
	for i := range r.items {
		r.items[i].idx = i
	}
}

// Values returns the stored values in oldest-to-newest order.
func (r *Ring[V]) Values() []V {
	out := make([]V, len(r.items))
	for i, it := range r.items {
		out[i] = it.value
	}
	return out
}

// Len returns the number of values currently stored.
func (r *Ring[V]) Len() int {
	return len(r.items)
}

// Index returns the index of the item in the ring.
func (it *Item[V]) Index() int {
	return it.idx
}

// Value returns the value of the item.
func (it *Item[V]) Value() V {
	return it.value
}

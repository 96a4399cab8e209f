// Copyright 2025 The Go-PWSafe Authors
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

package pwcrypto

import "sync"

// sizeClasses mirrors the rounded-size pooling idea used elsewhere in this
// codebase's lineage for scratch buffers: a handful of fixed buckets rather
// than one pool per exact length, so the allocator doesn't thrash on the
// many slightly-different field and block sizes the envelope churns
// through. Unlike a general-purpose byte-buffer pool, every buffer handed
// out here is assumed to hold secret material, so Release always zeroizes
// before returning it to its bucket.
var sizeClasses = [...]int{32, 64, 128, 256, 512, 1024, 4096}

var scratchPools = func() [len(sizeClasses)]sync.Pool {
	var pools [len(sizeClasses)]sync.Pool
	for i, n := range sizeClasses {
		n := n
		pools[i].New = func() interface{} {
			b := make([]byte, n)
			return &b
		}
	}
	return pools
}()

func classFor(n int) int {
	for i, c := range sizeClasses {
		if n <= c {
			return i
		}
	}
	return -1
}

// Scratch is a pooled secret buffer. GetScratch returns one whose Bytes()
// is exactly n bytes; Release zeroizes it and returns it to the pool it
// came from.
type Scratch struct {
	buf   []byte
	class int // -1 if this buffer didn't come from a pool (oversized request)
}

// GetScratch returns a Scratch whose Bytes() is exactly n bytes long,
// backed by pooled storage when n fits one of the known size classes.
func GetScratch(n int) *Scratch {
	class := classFor(n)
	if class < 0 {
		return &Scratch{buf: make([]byte, n), class: -1}
	}
	p := scratchPools[class].Get().(*[]byte)
	buf := (*p)[:n]
	Zero(buf)
	return &Scratch{buf: buf, class: class}
}

// Bytes returns the underlying buffer.
func (s *Scratch) Bytes() []byte { return s.buf }

// Release zeroizes the buffer and, if it came from a pool, returns it for
// reuse. A Scratch must not be used again after Release.
func (s *Scratch) Release() {
	if s == nil || s.buf == nil {
		return
	}
	Zero(s.buf)
	if s.class >= 0 {
		full := s.buf[:cap(s.buf)]
		scratchPools[s.class].Put(&full)
	}
	s.buf = nil
}

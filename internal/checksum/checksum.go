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

// Package checksum fingerprints a block's header word and its live payload
// bytes so the arena walker in audit.go can notice a stray write that
// clobbered a neighbor's header, or a block's own payload changing between
// two snapshots, before either manifests as a crash somewhere unrelated.
//
// It is a modified, non-cross-platform-compatible FNV-1a: it converts
// bytes to uint64 directly, so it doesn't produce the same result across
// CPU architectures. That's fine here — fingerprints are computed and
// checked within a single process's lifetime, never stored or compared
// across runs.
package checksum

import "unsafe"

const (
	fnvHashOffset64 = uint64(14695981039346656037)
	fnvHashPrime64  = uint64(1099511628211)
)

// Fingerprint hashes the header word (8 bytes) together with the declared
// payload length, so a block's audit fingerprint changes if either its
// flags/size field or its recorded length is corrupted.
func Fingerprint(headerWord uint64, payloadLen int) uint64 {
	h := fnvHashOffset64
	h ^= headerWord
	h *= fnvHashPrime64
	h ^= uint64(payloadLen)
	h *= fnvHashPrime64
	return h
}

// Hash returns the FNV-1a hash of b. audit.go uses it to fingerprint a
// block's live payload bytes (not just its header word), so a caller can
// snapshot BlockInfo.PayloadFingerprint across two Walk passes and notice
// a write that landed somewhere it shouldn't have.
//
// DO NOT persist the return value: it is not cross-platform compatible.
func Hash(b []byte) uint64 {
	return doHash(bytesDataPtr(b), len(b))
}

func bytesDataPtr(b []byte) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&b))
}

func doHash(p unsafe.Pointer, n int) uint64 {
	h := fnvHashOffset64
	i := 0
	for m := n >> 3; i < m; i++ {
		h ^= *(*uint64)(unsafe.Add(p, i<<3))
		h *= fnvHashPrime64
	}
	i = i << 3
	for ; i < n; i++ {
		h ^= uint64(*(*byte)(unsafe.Add(p, i)))
		h *= fnvHashPrime64
	}
	return h
}

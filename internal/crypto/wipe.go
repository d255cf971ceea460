// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "runtime"

// Wipe zeroes b in place. It is best effort: copies made by the runtime
// (for example by append growing a slice) are out of reach.
//
//go:noinline
func Wipe(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

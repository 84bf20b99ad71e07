// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gate

import (
	"strconv"
	"unicode/utf16"
)

// HashPIN maps a PIN to a comparable token: h = 31*h + c over the UTF-16
// code units of pin in 32-bit two's complement, rendered in decimal.
//
// It is a UX deterrent against casual shoulder access, not a security
// boundary. Stored hashes depend on this exact function.
func HashPIN(pin string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(pin)) {
		h = 31*h + int32(c)
	}
	return strconv.FormatInt(int64(h), 10)
}

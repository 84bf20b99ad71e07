// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrEmptyNote is returned by the vault edit route for a blank note.
	ErrEmptyNote = errors.New("note must not be empty")
)

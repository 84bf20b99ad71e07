// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// ErrIncompleteServer is returned by [NewServer] without HTTP handlers or a
// listen address.
var ErrIncompleteServer = errors.New("devserver needs http handlers and a listen address")

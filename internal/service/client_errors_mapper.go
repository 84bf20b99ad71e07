// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/mylife-client/internal/adapter"
	"github.com/MKhiriev/mylife-client/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. Anything without a service meaning is returned as is so
// the backend message stays visible.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return ErrVaultLockedForSync

	case errors.Is(err, adapter.ErrServiceUnavailable):
		return ErrVaultUnavailable

	case errors.Is(err, adapter.ErrConflict):
		return ErrSyncConflict

	case errors.Is(err, adapter.ErrRequestFailed):
		switch adapter.MessageOf(err) {
		case app.MsgMergeNotImplemented:
			return ErrMergeNotImplemented
		case app.MsgInvalidStrategy:
			return ErrInvalidStrategy
		}
	}

	return err
}

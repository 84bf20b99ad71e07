// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devbackend

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := New(logger.Nop())
	b.now = func() time.Time { return time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC) }
	return b
}

func unlockedBackend(t *testing.T) *Backend {
	t.Helper()
	b := newTestBackend(t)
	require.NoError(t, b.Setup("1234"))
	require.NoError(t, b.Unlock("1234"))
	return b
}

// ── lifecycle ──

func TestBackend_FreshInstall(t *testing.T) {
	b := newTestBackend(t)

	assert.Equal(t, models.VaultStatus{State: models.VaultStateNotExists}, b.Status())
}

func TestBackend_SetupUnlockLock(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.Setup("1234"))
	assert.Equal(t, models.VaultStatus{State: models.VaultStateLocked, VaultExists: true}, b.Status())

	require.NoError(t, b.Unlock("1234"))
	assert.Equal(t, models.VaultStatus{State: models.VaultStateUnlocked, VaultExists: true, IsUnlocked: true}, b.Status())

	require.NoError(t, b.Lock())
	assert.Equal(t, models.VaultStateLocked, b.Status().State)
}

func TestBackend_SetupErrors(t *testing.T) {
	b := newTestBackend(t)

	assert.ErrorIs(t, b.Setup("123"), ErrPINTooShort)

	require.NoError(t, b.Setup("1234"))
	assert.ErrorIs(t, b.Setup("5678"), ErrVaultAlreadyExists)
}

func TestBackend_UnlockWrongPIN(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.Setup("1234"))

	assert.ErrorIs(t, b.Unlock("1235"), ErrInvalidPIN)
	assert.Equal(t, models.VaultStateLocked, b.Status().State)
}

func TestBackend_UnlockWithoutVaultMarksUnavailable(t *testing.T) {
	b := newTestBackend(t)

	assert.ErrorIs(t, b.Unlock("1234"), ErrVaultNotInitialized)
	assert.Equal(t, models.VaultStateUnavailable, b.Status().State)
}

func TestBackend_LockWhenLocked(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.Setup("1234"))

	assert.ErrorIs(t, b.Lock(), ErrVaultNotUnlocked)
}

func TestBackend_CorruptThenRecover(t *testing.T) {
	b := unlockedBackend(t)

	b.Corrupt()
	assert.Equal(t, models.VaultStatus{State: models.VaultStateUnavailable, VaultExists: true}, b.Status())

	require.NoError(t, b.Recover())
	assert.Equal(t, models.VaultStatus{State: models.VaultStateNotExists}, b.Status())
	assert.Len(t, b.archived, 2)

	require.NoError(t, b.Setup("4321"))
}

func TestBackend_Guard(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.Setup("1234"))

	state, err := b.Guard()
	assert.ErrorIs(t, err, ErrVaultLocked)
	assert.Equal(t, models.VaultStateLocked, state)

	require.NoError(t, b.Unlock("1234"))
	_, err = b.Guard()
	assert.NoError(t, err)

	b.Corrupt()
	state, err = b.Guard()
	assert.ErrorIs(t, err, ErrVaultUnavailable)
	assert.Equal(t, models.VaultStateUnavailable, state)
}

func TestBackend_VaultIsSealedAtRest(t *testing.T) {
	b := unlockedBackend(t)
	require.NoError(t, b.Edit("first entry"))
	content := bytes.Clone(b.vault)

	assert.NotContains(t, string(b.sealed), "first entry")

	require.NoError(t, b.Lock())
	assert.Nil(t, b.vault)
	assert.Nil(t, b.key)

	assert.ErrorIs(t, b.Unlock("4321"), ErrInvalidPIN)
	require.NoError(t, b.Unlock("1234"))
	assert.Equal(t, content, b.vault)
}

func TestBackend_EditRequiresUnlocked(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.Setup("1234"))

	assert.ErrorIs(t, b.Edit("entry"), ErrVaultLocked)
}

// ── emergency export ──

func TestBackend_EmergencyExport(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.Setup("1234"))

	var buf bytes.Buffer
	require.NoError(t, b.EmergencyExport(&buf, "0.1.0"))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"metadata.json", "vault/salt.bin", "vault/vault.enc"}, names)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	require.NoError(t, err)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "MyLife", meta["app_name"])
	assert.Equal(t, "0.1.0", meta["version"])
	assert.Equal(t, "LOCKED", meta["vault_state"])
}

func TestBackend_EmergencyExport_NoFiles(t *testing.T) {
	b := newTestBackend(t)

	var buf bytes.Buffer
	assert.ErrorIs(t, b.EmergencyExport(&buf, "0.1.0"), ErrNoVaultFiles)
	assert.Zero(t, buf.Len())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gate implements the access gates that decide which screen the
// client may show.
//
// The gates are evaluated in order: [SessionGate] (terminal passphrase),
// [ReadinessProbe] (backend health), [AppLockGate] (optional local PIN) and
// [VaultAccessController] (vault lifecycle). [Route] folds their observed
// state into a single [Screen]; [Controller] owns the gates and advances
// them one automatic step at a time.
//
// No network call happens before the session gate is open.
package gate

// Package devbackend is an in-memory stand-in for the MyLife vault and sync
// backend used by cmd/devserver and by end-to-end tests of the client.
//
// It does not encrypt anything. The "vault" is a byte blob guarded by a
// bcrypt-hashed PIN and the "drive" holds the last pushed copy of that
// blob. Conflict detection follows the real backend: a pull conflicts when
// the local vault differs from the remote snapshot and was modified after
// the last synchronisation.
package devbackend

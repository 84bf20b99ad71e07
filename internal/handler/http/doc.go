// Package http exposes the development backend over the JSON-over-HTTP
// contract the MyLife client speaks.
//
// Every JSON route answers with the {success, data, error} envelope. The
// sync routes that need an unlocked vault sit behind a guard that answers
// 401 or 503 with a {"detail": {...}} body, like the real backend does.
// Tracing, access logging and gzip compression are handled here before the
// request reaches [devbackend.Backend].
package http

package client

import "errors"

var (
	// ErrIncompleteApp is returned by [NewApp] when a dependency is missing.
	ErrIncompleteApp = errors.New("client app needs config, backend and storages")
	// ErrUnknownCommand is returned by [App.RunCommand] for an unknown
	// subcommand.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrSecretMismatch is returned when a secret and its confirmation
	// differ.
	ErrSecretMismatch = errors.New("entries do not match")
)

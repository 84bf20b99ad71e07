// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"io"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the interactive client and blocks until exit.
	Run(ctx context.Context) error

	// RunCommand executes one headless subcommand and writes its output
	// to w.
	RunCommand(ctx context.Context, args []string, prompt PromptFunc, w io.Writer) error
}

// PromptFunc asks the user for a secret without echoing it.
type PromptFunc func(prompt string) (string, error)

var _ Client = (*App)(nil)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client process lifecycle.
//
// [App.Run] wires the gates, the client services and the terminal UI into
// one run and rebuilds them after a vault lock ("full reload").
// [App.RunCommand] serves the headless subcommands: status, applock set,
// applock disable and terminal-hash.
package client

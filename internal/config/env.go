// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment through the `env` and
// `envPrefix` tags of [StructuredConfig]. Unset variables leave their
// fields zero so the file and flag layers can still supply them.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{TagName: "env"}); err != nil {
		return fmt.Errorf("env config: %w", err)
	}
	return nil
}

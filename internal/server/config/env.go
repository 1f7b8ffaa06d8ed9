package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "PETCARE_"

// ApplyEnv overlays PETCARE_* environment variables onto config. Only the
// variables that are set touch the corresponding fields.
//
//	PETCARE_DATABASE_DSN=postgres://...   -> DatabaseDSN
//	PETCARE_TOKEN_SWEEP_INTERVAL=1h       -> TokenSweepInterval
func ApplyEnv(config *Config) error {
	k := koanf.New(".")

	transform := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", config); err != nil {
		return fmt.Errorf("unmarshal env: %w", err)
	}

	return nil
}

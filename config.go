package injectguard

import (
	"errors"
	"fmt"
	"os"

	"github.com/vippsas/injectguard/sqltokenize"
	"gopkg.in/yaml.v3"
)

// DetectorConfig is an optional YAML-backed override file letting an
// operator extend or trim the embedded fingerprint tables without
// recompiling. It is entirely optional: NewSQLiDetector with no options
// already runs against the built-in tables.
type DetectorConfig struct {
	// ServiceName identifies the deployment this config belongs to, purely
	// as an operator-facing label; nothing logs it and it has no effect on
	// detection.
	ServiceName string `yaml:"servicename"`

	// ExtraBlacklist lists additional folded fingerprint shapes (same
	// alphabet as Fingerprint.Value) to treat as injections.
	ExtraBlacklist []string `yaml:"extra_blacklist"`

	// ExtraWhitelist lists fingerprint shapes to exempt even if they
	// appear in ExtraBlacklist or the embedded table.
	ExtraWhitelist []string `yaml:"extra_whitelist"`
}

// LoadConfig reads and parses a DetectorConfig from path.
func LoadConfig(path string) (DetectorConfig, error) {
	var cfg DetectorConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DetectorConfig{}, fmt.Errorf("no config file found at %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return DetectorConfig{}, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return DetectorConfig{}, err
	}
	if cfg.ServiceName == "" {
		return DetectorConfig{}, errors.New("config missing servicename")
	}
	return cfg, nil
}

// Lookup builds a SQLiOption that wraps sqltokenize.DefaultLookup with
// this config's extra blacklist/whitelist fingerprint entries. Whitelist
// entries win over blacklist entries, which in turn win over the embedded
// table.
func (c DetectorConfig) Lookup() SQLiOption {
	black := make(map[string]bool, len(c.ExtraBlacklist))
	for _, fp := range c.ExtraBlacklist {
		black[fp] = true
	}
	white := make(map[string]bool, len(c.ExtraWhitelist))
	for _, fp := range c.ExtraWhitelist {
		white[fp] = true
	}
	return WithLookup(buildConfigLookup(black, white))
}

// buildConfigLookup closes over the resolved override maps and falls back
// to sqltokenize.DefaultLookup for every category except fingerprints,
// where the overrides apply first.
func buildConfigLookup(black, white map[string]bool) sqltokenize.LookupFunc {
	return func(word []byte, category sqltokenize.LookupKind) sqltokenize.TokenKind {
		if category == sqltokenize.LookupFingerprint {
			fp := string(word)
			if white[fp] {
				return sqltokenize.KindNone
			}
			if black[fp] {
				return sqltokenize.KindFingerprint
			}
		}
		return sqltokenize.DefaultLookup(word, category)
	}
}

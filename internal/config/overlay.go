// config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type keywordsFile struct {
	Keywords []string `yaml:"keywords"`
}

// OverlayKeywords lets an operator keep a separate keywords.yml next to the
// config and have it win over search.keywords.
func OverlayKeywords(cfg *Config, keywordsPath string) error {
	b, err := os.ReadFile(keywordsPath)
	if err != nil {
		// Missing overlay file should not kill startup
		return nil
	}

	var kf keywordsFile
	if err := yaml.Unmarshal(b, &kf); err != nil {
		return err
	}

	if len(kf.Keywords) > 0 {
		cfg.Search.Keywords = kf.Keywords
	}
	return nil
}

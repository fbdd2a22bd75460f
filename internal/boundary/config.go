package boundary

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"

	"github.com/rhagen/cdnl/internal/core"
)

// LoadSearchConfig reads a YAML search-configuration file and decodes it
// into a core.SearchConfig, starting from core.DefaultSearchConfig so a
// file only needs to mention the fields it overrides. The YAML is first
// unmarshalled into a generic map so mapstructure can report unknown keys
// as an error rather than silently discarding a typo.
func LoadSearchConfig(filename string) (core.SearchConfig, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return core.SearchConfig{}, fmt.Errorf("reading config %q: %w", filename, err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return core.SearchConfig{}, fmt.Errorf("parsing config %q: %w", filename, err)
	}

	cfg := core.DefaultSearchConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return core.SearchConfig{}, err
	}
	if err := dec.Decode(m); err != nil {
		return core.SearchConfig{}, fmt.Errorf("decoding config %q: %w", filename, err)
	}
	return cfg, nil
}

package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (STORE_ prefix), flags, or YAML config files.
type Config struct {
	CatalogFile string `default:"" yaml:"catalog_file" usage:"Path to a YAML product catalog; the demo catalog is used when empty" flag:"catalog-file"`
	Currency    string `default:"$" yaml:"currency" usage:"Currency symbol printed in front of order totals"`
}

// LoadConfig loads configuration from environment variables, flags and YAML
// config files.
func LoadConfig() (*Config, error) {
	return loadConfig(aconfig.Config{})
}

func loadConfig(base aconfig.Config) (*Config, error) {
	var cfg Config
	base.EnvPrefix = "STORE"
	if base.Files == nil {
		base.Files = []string{"store.yaml", "/etc/store/store.yaml"}
	}
	base.FileDecoders = map[string]aconfig.FileDecoder{
		".yaml": aconfigyaml.New(),
	}

	loader := aconfig.LoaderFor(&cfg, base)
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}

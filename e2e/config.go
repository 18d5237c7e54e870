package e2e

import "github.com/kelseyhightower/envconfig"

type Config struct {
	// BrokerAddr points the suite at an already-running broker. When empty
	// the suite starts one in-process on a loopback port.
	BrokerAddr string `envconfig:"BROKER_ADDR"`

	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

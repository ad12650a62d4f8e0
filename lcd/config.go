package lcd

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings of a [Client].
type Config struct {
	URL     string        `envconfig:"TERRA_LCD_URL" default:"https://lcd.terra.dev"`
	Timeout time.Duration `envconfig:"TERRA_LCD_TIMEOUT" default:"30s"`
	ChainID string        `envconfig:"TERRA_LCD_CHAIN_ID" default:"columbus-5"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}

package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Kiosk is the terminal client configuration.
type Kiosk struct {
	ServerURL   string `yaml:"server_url"`
	PollSeconds int    `yaml:"poll_seconds"`
}

// PollInterval returns the refresh interval.
func (k Kiosk) PollInterval() time.Duration {
	return time.Duration(k.PollSeconds) * time.Second
}

// DefaultKiosk returns the config used when no file is present.
func DefaultKiosk() Kiosk {
	return Kiosk{
		ServerURL:   "http://localhost:8000",
		PollSeconds: 30,
	}
}

// LoadKiosk reads the kiosk config from configs/kiosk.yaml, or the path in
// KIOSK_CONFIG_PATH. A missing file is not an error; defaults apply.
func LoadKiosk() (Kiosk, error) {
	configPath := "configs/kiosk.yaml"
	if envPath := os.Getenv("KIOSK_CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	cfg := DefaultKiosk()

	f, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultKiosk().ServerURL
	}
	if cfg.PollSeconds <= 0 {
		cfg.PollSeconds = DefaultKiosk().PollSeconds
	}
	return cfg, nil
}

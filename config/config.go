// Package config loads the YAML configuration for the chat screens and the
// triage service endpoint.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/jpalves/smartnurse"
)

// Config is the root configuration.
type Config struct {
	Service ServiceConfig     `yaml:"service"`
	Log     LogConfig         `yaml:"log"`
	Screens map[string]Screen `yaml:"screens"`
}

// ServiceConfig points at the triage service.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LogConfig configures logging. The TUI writes to File because stderr would
// corrupt the alternate screen; an empty File disables logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Screen configures one chat screen: response mode, locale strings and
// presentation labels. Empty string fields fall back to the engine defaults.
type Screen struct {
	Mode        string `yaml:"mode"`
	Title       string `yaml:"title"`
	Greeting    string `yaml:"greeting"`
	Canned      string `yaml:"canned_response"`
	Analyzing   string `yaml:"analyzing_text"`
	Placeholder string `yaml:"placeholder"`
}

// SessionConfig converts a screen to the engine's session configuration.
func (s Screen) SessionConfig() smartnurse.SessionConfig {
	mode := smartnurse.ResponseMode(s.Mode)
	if mode != smartnurse.ModeTriage {
		mode = smartnurse.ModeDirect
	}
	return smartnurse.SessionConfig{
		Mode:           mode,
		Greeting:       s.Greeting,
		CannedResponse: s.Canned,
		AnalyzingText:  s.Analyzing,
	}
}

// Load reads a YAML config file, unmarshals it and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the built-in configuration with the standard screens.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Screen resolves a screen by name.
func (c *Config) Screen(name string) (Screen, error) {
	s, ok := c.Screens[name]
	if !ok {
		return Screen{}, fmt.Errorf("unknown screen %q (have: %v)", name, c.ScreenNames())
	}
	return s, nil
}

// ScreenNames lists the configured screens in sorted order.
func (c *Config) ScreenNames() []string {
	names := make([]string, 0, len(c.Screens))
	for name := range c.Screens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyDefaults fills zero-value fields. Screens configured in the file are
// merged over the built-in set.
func applyDefaults(cfg *Config) {
	if cfg.Service.BaseURL == "" {
		cfg.Service.BaseURL = "http://localhost:8000"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Screens == nil {
		cfg.Screens = map[string]Screen{}
	}
	for name, screen := range builtinScreens() {
		if _, ok := cfg.Screens[name]; !ok {
			cfg.Screens[name] = screen
		}
	}
}

// builtinScreens returns the four standard chat screens. They differ only in
// configuration; the session engine underneath is the same.
func builtinScreens() map[string]Screen {
	return map[string]Screen{
		"smartdiag": {
			Mode:        string(smartnurse.ModeTriage),
			Title:       "Smart Diagnosis",
			Placeholder: "Descreva seus sintomas...",
		},
		"medschool": {
			Mode:        string(smartnurse.ModeDirect),
			Title:       "Medical School",
			Greeting:    "Olá! Sou o assistente da Medical School. Pergunta-me sobre qualquer tópico relacionado à medicina e vou tentar ajudá-lo a aprender mais.",
			Placeholder: "Pergunta o que gostarias de saber...",
		},
		"ajuda": {
			Mode:        string(smartnurse.ModeDirect),
			Title:       "Smart Nurse",
			Greeting:    "Olá! Em que posso ajudar? Pergunte-me sobre qualquer coisa relacionada à saúde.",
			Placeholder: "Escreva a sua pergunta...",
		},
		"sintomas": {
			Mode:        string(smartnurse.ModeTriage),
			Title:       "Smart Diagnosis",
			Greeting:    "Olá! Sou o assistente do Smart Diagnosis. Diga-me os seus sintomas e vou tentar ajudá-lo a descobrir o que pode estar por trás.",
			Placeholder: "Descreva seus sintomas...",
		},
	}
}

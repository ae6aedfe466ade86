package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/pricedash/dataset"
	"gopkg.in/yaml.v3"
)

// Config represents the complete dashboard configuration
type Config struct {
	Data    DataConfig    `json:"data" yaml:"data"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// DataConfig locates the four exports
type DataConfig struct {
	Revenue  string `json:"revenue" yaml:"revenue"`
	Margin   string `json:"margin" yaml:"margin"`
	Quantity string `json:"quantity" yaml:"quantity"`
	Products string `json:"products" yaml:"products"`
}

// ServerConfig contains HTTP listener and page chrome settings
type ServerConfig struct {
	Addr  string `json:"addr" yaml:"addr"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Logo  string `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// JournalConfig contains snapshot journaling parameters
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "csv" or "sqlite"
	SummariesFile string `json:"summaries_file,omitempty" yaml:"summaries_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// LoadFromFile loads configuration from a file, trying YAML then JSON
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and JSON otherwise
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Data.Revenue == "" || c.Data.Margin == "" || c.Data.Quantity == "" {
		return fmt.Errorf("data.revenue, data.margin and data.quantity are required")
	}
	if c.Data.Products == "" {
		return fmt.Errorf("data.products is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && c.Journal.SummariesFile == "" {
		return fmt.Errorf("journal summaries_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Paths returns the export locations in the form dataset.Load takes.
func (c *Config) Paths() dataset.Paths {
	return dataset.Paths{
		Revenue:  c.Data.Revenue,
		Margin:   c.Data.Margin,
		Quantity: c.Data.Quantity,
		Products: c.Data.Products,
	}
}

// Default returns a configuration pointing at the exports in the working
// directory
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Revenue:  "aggregated_revenue.csv",
			Margin:   "aggregated_margin.csv",
			Quantity: "aggregated_quantity.csv",
			Products: "Soprema_results__Feb24_Feb25(Results per product).csv",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Journal: JournalConfig{
			Type:          "csv",
			SummariesFile: "./summaries.csv",
		},
	}
}

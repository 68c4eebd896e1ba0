package config

import (
	"fmt"
	"os"
	"time"

	"finsight/internal/model"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Companies []model.Company `yaml:"companies"`
	Output    struct {
		Dir     string `yaml:"dir"`
		LogFile string `yaml:"log_file"`
	} `yaml:"output"`
	DataSource struct {
		BaseURL    string  `yaml:"base_url"`
		APIKey     string  `yaml:"api_key"`
		RatePerSec float64 `yaml:"rate_per_sec"`
	} `yaml:"data_source"`
	Schedule struct {
		DailyTime  string `yaml:"daily_time"`
		WeeklyDay  string `yaml:"weekly_day"`
		WeeklyTime string `yaml:"weekly_time"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FINSIGHT_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("FINSIGHT_LOG_FILE"); v != "" {
		cfg.Output.LogFile = v
	}
	if v := os.Getenv("FINSIGHT_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("FINSIGHT_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("FINSIGHT_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Companies) == 0 {
		cfg.Companies = []model.Company{
			{Symbol: "PDD", Name: "拼多多"},
			{Symbol: "BABA", Name: "阿里巴巴"},
			{Symbol: "JD", Name: "京东"},
			{Symbol: "TME", Name: "腾讯音乐"},
			{Symbol: "NIO", Name: "蔚来"},
		}
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "data"
	}
	if cfg.Output.LogFile == "" {
		cfg.Output.LogFile = "finsight.log"
	}
	if cfg.DataSource.RatePerSec == 0 {
		// One request every two seconds keeps well inside provider limits.
		// rate_per_sec: -1 disables pacing entirely.
		cfg.DataSource.RatePerSec = 0.5
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/finsight.db"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Companies) == 0 {
		return fmt.Errorf("companies list is empty")
	}
	for i, cm := range c.Companies {
		if cm.Symbol == "" {
			return fmt.Errorf("companies[%d]: symbol is required", i)
		}
	}
	if c.Schedule.DailyTime != "" {
		if _, err := time.Parse("15:04", c.Schedule.DailyTime); err != nil {
			return fmt.Errorf("schedule.daily_time: %w", err)
		}
	}
	if c.Schedule.WeeklyTime != "" {
		if _, err := time.Parse("15:04", c.Schedule.WeeklyTime); err != nil {
			return fmt.Errorf("schedule.weekly_time: %w", err)
		}
	}
	return nil
}

package infra

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is sent on outbound HTTP and WebSocket connections.
const DefaultUserAgent = "Cryptobot-Charles/1.0"

// Config holds the full application configuration. Secrets in the file
// are overridden by environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`

	Trading struct {
		Mode                 string   `yaml:"mode"` // "MOCK" or "LIVE"
		AllowedTickers       []string `yaml:"allowed_tickers"`
		CancelOnFailure      bool     `yaml:"cancel_on_failure"`
		MaxEntryDeviationPct string   `yaml:"max_entry_deviation_pct"` // empty disables the price guard
	} `yaml:"trading"`

	API struct {
		Binance struct {
			RestURL      string `yaml:"rest_url"`
			WSURL        string `yaml:"ws_url"`
			APIKey       string `yaml:"api_key"`
			SecretKey    string `yaml:"secret_key"`
			RecvWindowMS int    `yaml:"recv_window_ms"`
		} `yaml:"binance"`
		Telegram struct {
			APIURL   string `yaml:"api_url"`
			BotToken string `yaml:"bot_token"`
			ChatID   string `yaml:"chat_id"`
		} `yaml:"telegram"`
	} `yaml:"api"`

	Storage struct {
		Path string `yaml:"path"` // empty disables the execution journal
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file, applies defaults
// and environment overrides, then fails fast on anything invalid.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":5000"
	}
	if c.Trading.Mode == "" {
		c.Trading.Mode = "MOCK"
	}
	if c.API.Binance.RestURL == "" {
		c.API.Binance.RestURL = "https://api.binance.com"
	}
	if c.API.Binance.WSURL == "" {
		c.API.Binance.WSURL = "wss://stream.binance.com:9443"
	}
	if c.API.Binance.RecvWindowMS == 0 {
		c.API.Binance.RecvWindowMS = 5000
	}
	if c.API.Telegram.APIURL == "" {
		c.API.Telegram.APIURL = "https://api.telegram.org"
	}
}

// overrideWithEnv lets secrets live outside the config file. Environment
// variables always win over file values.
func (c *Config) overrideWithEnv() {
	if c.API.Binance.SecretKey != "" || c.API.Telegram.BotToken != "" {
		slog.Warn("⚠️ Secrets found in config file, prefer environment variables",
			slog.String("vars", "BINANCE_API_KEY, BINANCE_API_SECRET, TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID"))
	}

	if key := os.Getenv("BINANCE_API_KEY"); key != "" {
		c.API.Binance.APIKey = key
	}
	if secret := os.Getenv("BINANCE_API_SECRET"); secret != "" {
		c.API.Binance.SecretKey = secret
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.API.Telegram.BotToken = token
	}
	if chat := os.Getenv("TELEGRAM_CHAT_ID"); chat != "" {
		c.API.Telegram.ChatID = chat
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Trading.Mode != "MOCK" && c.Trading.Mode != "LIVE" {
		return fmt.Errorf("trading mode must be MOCK or LIVE, got %q", c.Trading.Mode)
	}
	if len(c.Trading.AllowedTickers) == 0 {
		return fmt.Errorf("at least one allowed ticker is required")
	}
	if c.Trading.MaxEntryDeviationPct != "" {
		pct, err := decimal.NewFromString(c.Trading.MaxEntryDeviationPct)
		if err != nil || !pct.IsPositive() {
			return fmt.Errorf("max_entry_deviation_pct must be a positive number, got %q", c.Trading.MaxEntryDeviationPct)
		}
	}
	if !hasPrefix(c.API.Binance.WSURL, "ws://") && !hasPrefix(c.API.Binance.WSURL, "wss://") {
		return fmt.Errorf("invalid Binance WS URL: %s", c.API.Binance.WSURL)
	}

	if c.Trading.Mode == "LIVE" {
		if c.API.Binance.APIKey == "" || c.API.Binance.SecretKey == "" {
			return fmt.Errorf("LIVE mode requires Binance API credentials")
		}
		if c.API.Telegram.BotToken == "" || c.API.Telegram.ChatID == "" {
			return fmt.Errorf("LIVE mode requires Telegram bot token and chat ID")
		}
	}
	return nil
}

// MaxEntryDeviation returns the parsed price-guard threshold and whether
// the guard is enabled. Call only after Validate has passed.
func (c *Config) MaxEntryDeviation() (decimal.Decimal, bool) {
	if c.Trading.MaxEntryDeviationPct == "" {
		return decimal.Decimal{}, false
	}
	pct, err := decimal.NewFromString(c.Trading.MaxEntryDeviationPct)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return pct, true
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// internal/config/config.go

// Package config 載入執行設定：先讀 .env（若存在），再讀 YAML 設定檔（若指定或存在），
// 最後以 LEDGER_ 前綴的環境變數覆寫，例如 LEDGER_SERVER_PORT=9000。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 彙整所有設定區段。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Currency CurrencyConfig `mapstructure:"currency"`
	Report   ReportConfig   `mapstructure:"report"`
}

// ServerConfig 控制 HTTP 伺服器。
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr 回傳 host:port。
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig 控制結構化日誌。
type LogConfig struct {
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"` // text|json
	Output        string `mapstructure:"output"` // stdout|stderr|discard
	IncludeCaller bool   `mapstructure:"include_caller"`
}

// CurrencyConfig 控制金額顯示。
type CurrencyConfig struct {
	Locale string `mapstructure:"locale"`
	Symbol string `mapstructure:"symbol"`
}

// ReportConfig 控制報表時間顯示的時區；空字串代表本地時區。
type ReportConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// Location 解析報表時區。
func (r ReportConfig) Location() (*time.Location, error) {
	if r.Timezone == "" || strings.EqualFold(r.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(r.Timezone)
}

var defaults = map[string]any{
	"server.host":             "0.0.0.0",
	"server.port":             8080,
	"server.mode":             "release",
	"server.read_timeout":     "10s",
	"server.write_timeout":    "15s",
	"server.shutdown_timeout": "10s",
	"log.level":               "info",
	"log.format":              "text",
	"log.output":              "stdout",
	"log.include_caller":      false,
	"currency.locale":         "en-US",
	"currency.symbol":         "$",
	"report.timezone":         "",
}

// Load 讀取設定。path 為空時在目前目錄尋找 ledger.yaml，找不到則只用預設值與環境變數。
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("ledger")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Server.Port)
	}
	if _, err := c.Report.Location(); err != nil {
		return fmt.Errorf("invalid report timezone %q: %w", c.Report.Timezone, err)
	}
	return nil
}

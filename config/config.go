package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Telegram TelegramConfig
	Tracker  TrackerConfig
	Webhook  WebhookConfig
	Database DatabaseConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken      string
	ChatID        int64  // destination chat for webhook notifications
	WebhookURL    string // public URL for Telegram updates (optional, ngrok auto-detect otherwise)
	AdminPassword string
}

// TrackerConfig configures the Kaiten task tracker integration.
type TrackerConfig struct {
	BaseURL      string
	APIToken     string
	QAColumnID   string // destination column for merged PR cards
	TaskPattern  string // regexp with one capture group yielding the task id
	LinkTemplate string // card URL template, {id} is substituted
}

type WebhookConfig struct {
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int // per-source budget; bursts admit at most 10% of it (floor 1) at once
}

type DatabaseConfig struct {
	DSN string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.ChatID = viper.GetInt64("telegram.chat_id")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.AdminPassword = viper.GetString("telegram.admin_password")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	if tgChat := viper.GetString("telegram_chat_id"); tgChat != "" {
		id, err := strconv.ParseInt(tgChat, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", tgChat, err)
		}
		cfg.Telegram.ChatID = id
	}

	// Task tracker
	cfg.Tracker.BaseURL = viper.GetString("tracker.base_url")
	cfg.Tracker.APIToken = viper.GetString("tracker.api_token")
	cfg.Tracker.QAColumnID = viper.GetString("tracker.qa_column_id")
	cfg.Tracker.TaskPattern = viper.GetString("tracker.task_pattern")
	cfg.Tracker.LinkTemplate = viper.GetString("tracker.link_template")
	if trToken := viper.GetString("tracker_api_token"); trToken != "" {
		cfg.Tracker.APIToken = trToken
	}

	// GitHub webhook
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	// Split allowed IPs since viper might not parse array seamlessly from env
	var ips []string
	if rawIps := viper.GetString("webhook.allowed_ips"); rawIps != "" {
		for _, ip := range strings.Split(rawIps, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				ips = append(ips, ip)
			}
		}
	}
	cfg.Webhook.AllowedIPs = ips

	// Database
	cfg.Database.DSN = viper.GetString("database.dsn")
	if dsn := viper.GetString("database_dsn"); dsn != "" {
		cfg.Database.DSN = dsn
	}

	if err := validateTrackerConfig(&cfg.Tracker); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("webhook.rate_limit_per_min", 60)
	viper.SetDefault("tracker.task_pattern", `\bZB-(\d+)\b`)
}

// validateTrackerConfig verifies startup-fatal tracker settings: an unparsable
// task pattern or a non-numeric column id must fail at boot, not per request.
func validateTrackerConfig(cfg *TrackerConfig) error {
	re, err := regexp.Compile(cfg.TaskPattern)
	if err != nil {
		return fmt.Errorf("invalid tracker.task_pattern %q: %w", cfg.TaskPattern, err)
	}
	if re.NumSubexp() < 1 {
		return fmt.Errorf("tracker.task_pattern %q must contain a capture group for the task id", cfg.TaskPattern)
	}
	if cfg.QAColumnID != "" {
		if _, err := strconv.ParseUint(cfg.QAColumnID, 10, 64); err != nil {
			return fmt.Errorf("invalid tracker.qa_column_id %q: %w", cfg.QAColumnID, err)
		}
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	UI            UIConfig            `mapstructure:"ui"`
	Catalog       CatalogConfig       `mapstructure:"catalog"`
	Chat          ChatConfig          `mapstructure:"chat"`
	User          UserConfig          `mapstructure:"user"`
	API           APIConfig           `mapstructure:"api"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Log           LogConfig           `mapstructure:"log"`
	Fixtures      string              `mapstructure:"fixtures"`
}

// UIConfig holds presentation settings. Widths are terminal columns.
type UIConfig struct {
	PageSize             int  `mapstructure:"page_size"`
	CompactWidth         int  `mapstructure:"compact_width"`
	SidebarCollapseWidth int  `mapstructure:"sidebar_collapse_width"`
	SidebarCollapsed     bool `mapstructure:"sidebar_collapsed"`
	Color                bool `mapstructure:"color"`
}

// CatalogConfig holds the closed option sets offered by filters and dialogs.
type CatalogConfig struct {
	Types      []string `mapstructure:"types"`
	Statuses   []string `mapstructure:"statuses"`
	ModelTypes []string `mapstructure:"model_types"`
	BaseModels []string `mapstructure:"base_models"`
}

// ChatConfig holds the chat mock settings.
type ChatConfig struct {
	ReplyDelay time.Duration `mapstructure:"reply_delay"`
	MaxInput   int           `mapstructure:"max_input"`
	Seed       int64         `mapstructure:"seed"`
}

// UserConfig holds the profile shown in the sidebar and settings.
type UserConfig struct {
	Name     string `mapstructure:"name"`
	Initials string `mapstructure:"initials"`
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
}

// APIConfig holds the API settings tab. Key is read from file or ZAMS_API_KEY
// but never saved back.
type APIConfig struct {
	Key       string `mapstructure:"key"`
	RateLimit bool   `mapstructure:"rate_limit"`
}

// NotificationsConfig holds the notification toggles.
type NotificationsConfig struct {
	Email        bool `mapstructure:"email"`
	Push         bool `mapstructure:"push"`
	WeeklyDigest bool `mapstructure:"weekly_digest"`
}

// LogConfig controls the log file. The terminal belongs to the TUI.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// ZAMS_. path wins over ZAMS_CONFIG, which wins over the default location.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("ZAMS_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ZAMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit path that does not exist yet is fine; Save creates it.
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.normalize()
	return c, nil
}

// Default returns the configuration with no file and no env applied.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	c.normalize()
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("ui.compact_width", 80)
	v.SetDefault("ui.sidebar_collapse_width", 100)
	v.SetDefault("ui.sidebar_collapsed", false)
	v.SetDefault("ui.color", true)

	v.SetDefault("catalog.types", []string{"PDF", "CSV", "DOCX"})
	v.SetDefault("catalog.statuses", []string{"Uploaded", "Connected"})
	v.SetDefault("catalog.model_types", []string{"Fine-tuned", "RAG", "Custom"})
	v.SetDefault("catalog.base_models", []string{"GPT-4", "Claude 3", "Llama 3", "Mistral"})

	v.SetDefault("chat.reply_delay", "1s")
	v.SetDefault("chat.max_input", 1000)
	v.SetDefault("chat.seed", 0)

	v.SetDefault("user.name", "John Doe")
	v.SetDefault("user.initials", "JD")
	v.SetDefault("user.username", "johndoe")
	v.SetDefault("user.email", "john.doe@example.com")

	v.SetDefault("api.key", "")
	v.SetDefault("api.rate_limit", true)

	v.SetDefault("notifications.email", true)
	v.SetDefault("notifications.push", false)
	v.SetDefault("notifications.weekly_digest", true)

	v.SetDefault("log.path", defaultLogPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("fixtures", "")
}

func (c *Config) normalize() {
	if c.UI.PageSize <= 0 {
		c.UI.PageSize = 10
	}
	if c.Chat.MaxInput <= 0 {
		c.Chat.MaxInput = 1000
	}
	if c.Chat.ReplyDelay < 0 {
		c.Chat.ReplyDelay = 0
	}
}

// Save writes the settings the TUI edits to disk, creating the config
// directory if needed. Keys already in the file that the TUI does not edit
// are kept. The API key is not written; it goes to the secrets store.
func Save(cfg Config, path string) error {
	if path == "" {
		path = os.Getenv("ZAMS_CONFIG")
	}
	if path == "" {
		path = filepath.Join(configDir(), "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read config: %w", err)
	}
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.sidebar_collapsed", cfg.UI.SidebarCollapsed)
	v.Set("ui.color", cfg.UI.Color)
	v.Set("user.username", cfg.User.Username)
	v.Set("user.email", cfg.User.Email)
	v.Set("api.rate_limit", cfg.API.RateLimit)
	v.Set("notifications.email", cfg.Notifications.Email)
	v.Set("notifications.push", cfg.Notifications.Push)
	v.Set("notifications.weekly_digest", cfg.Notifications.WeeklyDigest)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func configDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "zams")
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "zams", "zams.log")
}

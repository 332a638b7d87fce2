package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pders01/hnstories/internal/validation"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	API      APIConfig      `mapstructure:"api"`
	Search   SearchConfig   `mapstructure:"search"`
	UI       UIConfig       `mapstructure:"ui"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	Keys     KeyConfig      `mapstructure:"keys"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// APIConfig describes the remote story search service.
type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	SearchPath  string        `mapstructure:"search_path"`
	QueryParam  string        `mapstructure:"query_param"`
	PageParam   string        `mapstructure:"page_param"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type SearchConfig struct {
	DefaultTerm string `mapstructure:"default_term"`
	StorageKey  string `mapstructure:"storage_key"`
	HistorySize int    `mapstructure:"history_size"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

// BrowserConfig lists candidate commands for opening story links, per OS.
type BrowserConfig struct {
	Darwin        []string `mapstructure:"darwin"`
	Linux         []string `mapstructure:"linux"`
	Windows       []string `mapstructure:"windows"`
	DefaultOpener string   `mapstructure:"default_opener"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit        string `mapstructure:"quit"`
	Search      string `mapstructure:"search"`
	History     string `mapstructure:"history"`
	Dismiss     string `mapstructure:"dismiss"`
	Open        string `mapstructure:"open"`
	NextPage    string `mapstructure:"next_page"`
	PrevPage    string `mapstructure:"prev_page"`
	SortTitle   string `mapstructure:"sort_title"`
	SortAuthor  string `mapstructure:"sort_author"`
	SortComment string `mapstructure:"sort_comment"`
	SortPoint   string `mapstructure:"sort_point"`
	SortNone    string `mapstructure:"sort_none"`
	Back        string `mapstructure:"back"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Path:    filepath.Join(homeDir, ".hnstories.db"),
			Timeout: 1 * time.Second,
		},
		API: APIConfig{
			BaseURL:     "https://hn.algolia.com/api/v1",
			SearchPath:  "/search",
			QueryParam:  "query",
			PageParam:   "page",
			HTTPTimeout: 15 * time.Second,
			UserAgent:   "hnstories/1.0 (https://github.com/pders01/hnstories)",
		},
		Search: SearchConfig{
			DefaultTerm: "React",
			StorageKey:  "search",
			HistorySize: 6,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6600",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
				Success:   "#4ADE80",
			},
		},
		Browser: BrowserConfig{
			Darwin:        []string{"open"},
			Linux:         []string{"xdg-open", "sensible-browser", "firefox"},
			Windows:       []string{"rundll32"},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:        "q",
				Search:      "/",
				History:     "h",
				Dismiss:     "x",
				Open:        "o",
				NextPage:    "n",
				PrevPage:    "p",
				SortTitle:   "1",
				SortAuthor:  "2",
				SortComment: "3",
				SortPoint:   "4",
				SortNone:    "0",
				Back:        "esc",
			},
		},
		Log: LogConfig{
			Level: "off",
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "rundll32"
	default:
		return "open"
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Nested maps let a file override single keys of a section.
	for section, values := range sections(defaultConfig()) {
		v.SetDefault(section, values)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "hnstories")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HNSTORIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	config.Database.Path = expandPath(config.Database.Path)
	config.Log.File = expandPath(config.Log.File)

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects configurations the search client cannot work with.
func Validate(cfg *Config) error {
	v := validation.NewPermissiveEndpointValidator()
	if _, err := v.ValidateAndNormalize(cfg.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if cfg.API.QueryParam == "" {
		return fmt.Errorf("api.query_param cannot be empty")
	}
	if cfg.API.PageParam == "" || cfg.API.PageParam == cfg.API.QueryParam {
		return fmt.Errorf("api.page_param must be set and differ from api.query_param")
	}
	if cfg.Search.StorageKey == "" {
		return fmt.Errorf("search.storage_key cannot be empty")
	}
	if cfg.Search.HistorySize < 1 {
		return fmt.Errorf("search.history_size must be positive, got %d", cfg.Search.HistorySize)
	}
	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// sections renders config as one map per TOML table, keyed like the
// mapstructure tags.
func sections(config *Config) map[string]map[string]interface{} {
	// Durations as strings keep the TOML readable
	dbCfg := map[string]interface{}{
		"path":    config.Database.Path,
		"timeout": config.Database.Timeout.String(),
	}

	apiCfg := map[string]interface{}{
		"base_url":     config.API.BaseURL,
		"search_path":  config.API.SearchPath,
		"query_param":  config.API.QueryParam,
		"page_param":   config.API.PageParam,
		"http_timeout": config.API.HTTPTimeout.String(),
		"user_agent":   config.API.UserAgent,
	}

	searchCfg := map[string]interface{}{
		"default_term": config.Search.DefaultTerm,
		"storage_key":  config.Search.StorageKey,
		"history_size": config.Search.HistorySize,
	}

	c := config.UI.Colors
	uiCfg := map[string]interface{}{
		"colors": map[string]interface{}{
			"primary":   c.Primary,
			"secondary": c.Secondary,
			"accent":    c.Accent,
			"text":      c.Text,
			"muted":     c.Muted,
			"error":     c.Error,
			"success":   c.Success,
		},
	}

	browserCfg := map[string]interface{}{
		"darwin":         config.Browser.Darwin,
		"linux":          config.Browser.Linux,
		"windows":        config.Browser.Windows,
		"default_opener": config.Browser.DefaultOpener,
	}

	b := config.Keys.Bindings
	keysCfg := map[string]interface{}{
		"modifier": config.Keys.Modifier,
		"bindings": map[string]interface{}{
			"quit":         b.Quit,
			"search":       b.Search,
			"history":      b.History,
			"dismiss":      b.Dismiss,
			"open":         b.Open,
			"next_page":    b.NextPage,
			"prev_page":    b.PrevPage,
			"sort_title":   b.SortTitle,
			"sort_author":  b.SortAuthor,
			"sort_comment": b.SortComment,
			"sort_point":   b.SortPoint,
			"sort_none":    b.SortNone,
			"back":         b.Back,
		},
	}

	logCfg := map[string]interface{}{
		"level": config.Log.Level,
		"file":  config.Log.File,
	}

	return map[string]map[string]interface{}{
		"database": dbCfg,
		"api":      apiCfg,
		"search":   searchCfg,
		"ui":       uiCfg,
		"browser":  browserCfg,
		"keys":     keysCfg,
		"log":      logCfg,
	}
}

func Save(config *Config, path string) error {
	v := viper.New()
	for section, values := range sections(config) {
		v.Set(section, values)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "TASKDASH"

type Config struct {
	DBPath      string `mapstructure:"db_path"`
	DBDriver    string `mapstructure:"db_driver"`
	CachePath   string `mapstructure:"cache_path"`
	ServerURL   string `mapstructure:"server_url"`
	ListenAddr  string `mapstructure:"listen_addr"`
	UploadDir   string `mapstructure:"upload_dir"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
	BackupFile  string `mapstructure:"backup_file"`
	ThemeName   string `mapstructure:"theme_name"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

var (
	configDir  string
	configFile string
	envFile    = ".env"
)

func init() {
	// get home dir
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}

	configDir = filepath.Join(homeDir, ".taskdash")
	configFile = filepath.Join(configDir, "config.yaml")
}

func GetConfigDir() string {
	return configDir
}

func GetConfigFile() string {
	return configFile
}

func ConfigExists() bool {
	_, err := os.Stat(configFile)
	return err == nil
}

func EnsureConfigDir() error {
	return os.MkdirAll(configDir, 0755)
}

// returns default config
func GetDefaultConfig() *Config {
	return &Config{
		DBPath:      filepath.Join(configDir, "dashboard.db"),
		DBDriver:    "sqlite3",
		CachePath:   filepath.Join(configDir, "cache.db"),
		ServerURL:   "",
		ListenAddr:  ":3000",
		UploadDir:   filepath.Join(configDir, "uploads"),
		MaxUploadMB: 10,
		BackupFile:  filepath.Join(configDir, "data.json"),
		ThemeName:   "",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	def := GetDefaultConfig()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("db_driver", def.DBDriver)
	v.SetDefault("cache_path", def.CachePath)
	v.SetDefault("server_url", def.ServerURL)
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("upload_dir", def.UploadDir)
	v.SetDefault("max_upload_mb", def.MaxUploadMB)
	v.SetDefault("backup_file", def.BackupFile)
	v.SetDefault("theme_name", def.ThemeName)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loads .env, then the config file, then TASKDASH_* overrides
func LoadConfig() (*Config, error) {
	if err := EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	v := newViper()
	if ConfigExists() {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(configDir, "dashboard.db")
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}

	return &cfg, nil
}

// saves config to file
func SaveConfig(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("db_path", cfg.DBPath)
	v.Set("db_driver", cfg.DBDriver)
	v.Set("cache_path", cfg.CachePath)
	v.Set("server_url", cfg.ServerURL)
	v.Set("listen_addr", cfg.ListenAddr)
	v.Set("upload_dir", cfg.UploadDir)
	v.Set("max_upload_mb", cfg.MaxUploadMB)
	v.Set("backup_file", cfg.BackupFile)
	v.Set("theme_name", cfg.ThemeName)
	v.Set("log_level", cfg.LogLevel)
	v.Set("log_format", cfg.LogFormat)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// updates theme in config file
func UpdateTheme(themeName string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ThemeName = themeName
	return SaveConfig(cfg)
}

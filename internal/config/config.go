package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/synopsis.db
	BackupDir    string // $CONFIG_DIR/backups

	// Backups
	BackupEnabled bool
	BackupCron    string // cron expression for the snapshot job
	BackupKeep    int    // snapshots retained after pruning

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("BACKUP_ENABLED", true)
	viper.SetDefault("BACKUP_CRON", "0 3 * * *")
	viper.SetDefault("BACKUP_KEEP", 7)

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "synopsis")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	databaseFile := viper.GetString("DATABASE_FILE")
	if databaseFile == "" {
		databaseFile = filepath.Join(configDir, "synopsis.db")
	}

	backupDir := viper.GetString("BACKUP_DIR")
	if backupDir == "" {
		backupDir = filepath.Join(configDir, "backups")
	}

	config := &Config{
		ServerPort:    viper.GetString("SERVER_PORT"),
		DatabaseFile:  databaseFile,
		BackupDir:     backupDir,
		BackupEnabled: viper.GetBool("BACKUP_ENABLED"),
		BackupCron:    viper.GetString("BACKUP_CRON"),
		BackupKeep:    viper.GetInt("BACKUP_KEEP"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
	}

	// Validate
	if config.BackupEnabled && config.BackupKeep < 1 {
		return nil, fmt.Errorf("BACKUP_KEEP must be at least 1 when backups are enabled")
	}

	return config, nil
}

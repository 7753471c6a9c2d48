package internal

import (
    "fmt"
    "os"
    "path/filepath"

    "github.com/spf13/viper"
)

type Config struct {
    ImageExt     []string `mapstructure:"image_extensions"`
    VideoExt     []string `mapstructure:"video_extensions"`
    WritableExt  []string `mapstructure:"writable_extensions"`
    BackupSuffix string   `mapstructure:"backup_suffix"`
    MinYear      int      `mapstructure:"min_year"`
}

func LoadConfig() (*Config, error) {
    configDir, err := os.UserConfigDir()
    if err != nil {
        return nil, fmt.Errorf("failed to find user config dir: %w", err)
    }

    viper.SetConfigName("datefix")
    viper.SetConfigType("toml")
    viper.AddConfigPath(filepath.Join(configDir, "datefix"))

    // Set defaults:
    viper.SetDefault("image_extensions", defaultImageExt)
    viper.SetDefault("video_extensions", defaultVideoExt)
    viper.SetDefault("writable_extensions", defaultWritableExt)
    viper.SetDefault("backup_suffix", ".backup")
    viper.SetDefault("min_year", 1900)

    if err := viper.ReadInConfig(); err != nil {
        // Config file not found; that's OK, just use defaults
    }

    var cfg Config
    if err := viper.Unmarshal(&cfg); err != nil {
        return nil, fmt.Errorf("failed to parse config: %w", err)
    }

    return &cfg, nil
}

// DefaultConfig returns the built-in configuration without touching viper,
// for callers (and tests) that don't want config-file lookup.
func DefaultConfig() *Config {
    return &Config{
        ImageExt:     defaultImageExt,
        VideoExt:     defaultVideoExt,
        WritableExt:  defaultWritableExt,
        BackupSuffix: ".backup",
        MinYear:      1900,
    }
}

package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config exposes the settings the store needs.
type Config interface {
	BasePath() string
	UserID() string
}

// LoadConfig resolves store settings from a .reel config file and REEL_*
// environment variables.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.reel.db")
	viper.SetConfigName(".reel") // .yaml is implicit
	viper.SetEnvPrefix("REEL")
	viper.AutomaticEnv()

	if override := os.Getenv("REEL_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{Path: path, User: viper.GetString("user")}, nil
}

type fileConfig struct {
	Path string `json:"path"`
	User string `json:"user"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) UserID() string {
	return f.User
}

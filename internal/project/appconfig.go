package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/piwi3910/TreeFit/internal/model"
)

// EnvPrefix is the prefix of environment variables that override config
// values, e.g. TREEFIT_LOG_LEVEL or TREEFIT_SOLVER_USE_PRECHECK.
const EnvPrefix = "TREEFIT"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.treefit/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".treefit")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path and overlays any
// TREEFIT_* environment variables. If the file does not exist, the defaults
// (plus environment) are returned with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return model.AppConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config model.AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	// Ensure RecentInputs is never nil
	if config.RecentInputs == nil {
		config.RecentInputs = []string{}
	}
	return config, nil
}

// newViper returns a viper instance seeded with DefaultAppConfig and bound
// to the environment.
func newViper() *viper.Viper {
	v := viper.New()
	d := model.DefaultAppConfig()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("solver.use_precheck", d.Solver.UsePrecheck)
	v.SetDefault("solver.keep_witness", d.Solver.KeepWitness)
	v.SetDefault("solver.validate_region", d.Solver.ValidateRegion)
	v.SetDefault("export_dir", d.ExportDir)
	v.SetDefault("export_witness", d.ExportWitness)
	v.SetDefault("recent_inputs", d.RecentInputs)
	v.SetDefault("max_recent_inputs", d.MaxRecentInputs)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

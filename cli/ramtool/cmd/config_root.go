package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramkit/ramkit/internal/logger"
)

type (
	baseConfiguration struct {
		// The ramtool home directory
		HomeDir string
		// Configuration file URL. If it's relative, then it's relative from the HomeDir.
		CfgFile string
		// Logger configuration file URL.
		LogCfgFile string
	}
)

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "RAM"
	// The default name for config file.
	defaultConfigFile = "config.yaml"
	// the default ramtool directory.
	defaultRamtoolDir = ".ramtool"
	// The default logger configuration file name.
	defaultLoggerConfigFile = "logger-config.yaml"
	// The image store file inside the home directory.
	defaultImageStoreFile = "images.db"
	// The configuration key for home directory.
	keyHome = "home"
	// The configuration key for config file name.
	keyConfig = "config"

	flagNameLoggerCfgFile = "logger-config"
	flagNameLogLevel      = "log-level"
	flagNameLogFormat     = "log-format"
)

func (r *baseConfiguration) addConfigurationFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&r.HomeDir, keyHome, "", fmt.Sprintf("set the RAM_HOME for this invocation (default is %s)", ramtoolHomeDir()))
	cmd.PersistentFlags().StringVar(&r.CfgFile, keyConfig, "", fmt.Sprintf("config file URL (default is $RAM_HOME/%s)", defaultConfigFile))

	cmd.PersistentFlags().StringVar(&r.LogCfgFile, flagNameLoggerCfgFile, defaultLoggerConfigFile, "logger config file URL. Considered absolute if starts with '/'. Otherwise relative from $RAM_HOME.")
	// do not set default values for these flags as then we can easily determine whether to load the value from cfg file or not
	cmd.PersistentFlags().String(flagNameLogLevel, "", "logging level, one of: NONE, ERROR, WARNING, INFO, DEBUG, TRACE")
	cmd.PersistentFlags().String(flagNameLogFormat, "", "log format, one of: console, json")
}

func (r *baseConfiguration) initConfigFileLocation() {
	// Home directory and config file are special configuration values as these are used for loading in rest of the configuration.
	// Handle these manually, before other configuration loaded with Viper.
	if r.HomeDir == "" {
		r.HomeDir = os.Getenv(envKey(keyHome))
		if r.HomeDir == "" {
			r.HomeDir = ramtoolHomeDir()
		}
	}

	if r.CfgFile == "" {
		r.CfgFile = os.Getenv(envKey(keyConfig))
		if r.CfgFile == "" {
			r.CfgFile = defaultConfigFile
		}
	}
	if !filepath.IsAbs(r.CfgFile) {
		r.CfgFile = filepath.Join(r.HomeDir, r.CfgFile)
	}
}

/*
LoggerCfgFilename always returns non-empty filename - either the value
of the flag set by user or default cfg location.
*/
func (r *baseConfiguration) LoggerCfgFilename() string {
	if !filepath.IsAbs(r.LogCfgFile) {
		return filepath.Join(r.HomeDir, r.LogCfgFile)
	}
	return r.LogCfgFile
}

func (r *baseConfiguration) configFileExists() bool {
	_, err := os.Stat(r.CfgFile)
	return err == nil
}

func (r *baseConfiguration) imageStoreFile() string {
	return filepath.Join(r.HomeDir, defaultImageStoreFile)
}

/*
initLogger applies the logger configuration file (when present) and the log flags to the
global logger configuration. Flags override values loaded from the file.
*/
func (r *baseConfiguration) initLogger(cmd *cobra.Command) error {
	cfg := logger.DefaultConfig()

	loggerCfgFile := filepath.Clean(r.LoggerCfgFilename())
	if _, err := os.Stat(loggerCfgFile); err != nil {
		defaultLoggerCfg := filepath.Join(r.HomeDir, defaultLoggerConfigFile)
		if !(errors.Is(err, os.ErrNotExist) && loggerCfgFile == defaultLoggerCfg) {
			return fmt.Errorf("opening logger configuration file: %w", err)
		}
	} else {
		if cfg, err = logger.LoadGlobalConfigFromFile(loggerCfgFile); err != nil {
			return fmt.Errorf("decoding logger configuration (%s): %w", loggerCfgFile, err)
		}
	}

	if cmd.Flags().Changed(flagNameLogLevel) {
		level, err := cmd.Flags().GetString(flagNameLogLevel)
		if err != nil {
			return fmt.Errorf("failed to read %s flag value: %w", flagNameLogLevel, err)
		}
		cfg.DefaultLevel = logger.LevelFromString(strings.ToUpper(level))
	}
	if cmd.Flags().Changed(flagNameLogFormat) {
		format, err := cmd.Flags().GetString(flagNameLogFormat)
		if err != nil {
			return fmt.Errorf("failed to read %s flag value: %w", flagNameLogFormat, err)
		}
		switch format {
		case "console":
			cfg.ConsoleFormat = true
		case "json":
			cfg.ConsoleFormat = false
		default:
			return fmt.Errorf("unsupported log format %q", format)
		}
	}

	logger.UpdateGlobalConfig(cfg)
	return nil
}

func envKey(key string) string {
	return strings.ToUpper(envPrefix + "_" + key)
}

func ramtoolHomeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		panic("default user home dir not defined: " + err.Error())
	}
	return filepath.Join(dir, defaultRamtoolDir)
}

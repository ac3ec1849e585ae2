package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hb-chen/safeskill/internal/config"
	"github.com/hb-chen/safeskill/pkg/logger"
)

var (
	cfgFile, envFile, logLevel, logPath string
	stderr, debug                       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "safeskill",
	Short: "Host for the test-safe-skill skill",
	Long: `safeskill registers the test-safe-skill skill and exposes it on the
command line, over HTTP and gRPC, and as an MCP tool.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFile(envFile); err != nil {
			return err
		}
		configErr := initConfig()

		if err := initLogger(); err != nil {
			return err
		}

		if configErr != nil {
			logger.Warnf("Config file not loaded: %v", configErr)
		} else {
			logger.Infof("Using config file: %s", config.Viper().ConfigFileUsed())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the root command and flushes the logger on every path
func execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with SAFESKILL_* overrides, skipped when missing")
	rootCmd.PersistentFlags().BoolVarP(&stderr, "stderr", "e", false, "log to stderr")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR, FATAL, PANIC")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-path", "./log", "log file path")

	_ = config.Viper().BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = config.Viper().BindPFlag("log.path", rootCmd.PersistentFlags().Lookup("log-path"))
	_ = config.Viper().BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// loadEnvFile exports the variables in path unless they are already set
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	v := config.Viper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SAFESKILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func initLogger() error {
	v := config.Viper()
	zapLogger, err := logger.New(logger.Options{
		Path:   v.GetString("log.path"),
		Level:  v.GetString("log.level"),
		Debug:  v.GetBool("log.debug"),
		Stderr: stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	logger.ReplaceLogger(zapLogger)
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Yarielito06/humanizer-app/internal/config"
	"github.com/Yarielito06/humanizer-app/internal/logging"
)

var (
	cfgFile string
	useMock bool
)

var rootCmd = &cobra.Command{
	Use:   "humanize",
	Short: "Rewrite text through a text-generation provider",
	Long: `Humanize embeds text in an instructional prompt, sends it to the configured
provider (OpenAI, Gemini or Anthropic) and returns the rewritten text.

Configuration is read from an optional YAML file, then from HUMANIZE_*
environment variables and the provider credential (OPENAI_API_KEY,
GEMINI_API_KEY or ANTHROPIC_API_KEY). A .env file in the working directory
is loaded first when present.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "use the mock provider instead of a real one")
}

// loadConfig reads .env, the config file and the environment, then installs
// the configured logger writing to logOut.
func loadConfig(logOut io.Writer) (config.Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return config.Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if _, err := logging.Setup(logOut, cfg.LogLevel, cfg.LogFormat); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

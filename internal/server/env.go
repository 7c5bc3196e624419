package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Yarielito06/humanizer-app/internal/config"
	"github.com/Yarielito06/humanizer-app/internal/logging"
	"github.com/Yarielito06/humanizer-app/internal/prompt"
)

// FromEnvironment builds the App for processes configured only through the
// environment: the Vercel function and the Lambda function. A .env file in
// the working directory is honoured when present.
func FromEnvironment(version string) (*App, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("server: load .env: %w", err)
	}

	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		return nil, err
	}
	if _, err := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}

	prompts, err := prompt.Load(cfg.PromptPath)
	if err != nil {
		return nil, err
	}

	app, err := Build(cfg, prompts, false, version)
	if err != nil {
		return nil, err
	}
	slog.Info("rewrite service ready", "provider", app.Generator.Name(), "prompt", cfg.PromptPath)
	return app, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Yarielito06/humanizer-app/internal/adapter"
	"github.com/Yarielito06/humanizer-app/internal/prompt"
	"github.com/Yarielito06/humanizer-app/internal/rewrite"
)

var rewriteText string

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite text once and print the result",
	Long: `Rewrite text once through the configured provider and print the result.
The text comes from --text or, when the flag is empty, from stdin.

Examples:
  humanize rewrite --text "The results were significant."
  humanize rewrite < draft.txt`,
	Args: cobra.NoArgs,
	RunE: runRewrite,
}

func init() {
	rootCmd.AddCommand(rewriteCmd)
	rewriteCmd.Flags().StringVarP(&rewriteText, "text", "t", "", "text to rewrite (default: read stdin)")
}

func runRewrite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	text := rewriteText
	if text == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\r\n")
	}

	prompts, err := prompt.Load(cfg.PromptPath)
	if err != nil {
		return err
	}
	gen, _, err := adapter.New(cfg, useMock)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := rewrite.NewService(gen, prompts).Rewrite(ctx, text)
	if err != nil {
		var re *rewrite.Error
		if errors.As(err, &re) {
			return fmt.Errorf("%s: %s", re.Kind, re.Message)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

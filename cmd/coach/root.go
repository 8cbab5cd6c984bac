package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/config"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/version"
)

// dotEnvPath is loaded before configuration, relative to the working directory.
const dotEnvPath = ".env"

// usageError marks bad flags or arguments.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// commandContext carries the flags shared by every subcommand.
type commandContext struct {
	configFlag string
}

// loadConfig reads .env, then the YAML file from --config or COACH_CONFIG,
// then the environment.
func (c *commandContext) loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(dotEnvPath); err != nil {
		return config.Config{}, err
	}
	path := c.configFlag
	if path == "" {
		path = strings.TrimSpace(os.Getenv(config.EnvKeyConfigFile))
	}
	return config.Load(path)
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "coach",
		Short:         "AI conversation coach backend",
		Long:          "coach serves coaching responses for difficult conversations from Groq, OpenAI or Gemini.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetVersionTemplate(fmt.Sprintln(version.String()))
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "YAML configuration file path")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newAuditCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

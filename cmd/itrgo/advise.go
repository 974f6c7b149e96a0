package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/spf13/cobra"
)

func adviseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advise [input-file]",
		Short: "Ask Gemini for plain-language advice on the base taxpayer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			appCfg := config.LoadEnv(envFiles(envFile)...)

			cfg, err := loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			input := config.Inputs(cfg)[0]
			result, err := newEngine(cmd, config.ResolveRules(cfg)).Evaluate(input)
			if err != nil {
				return err
			}

			ctx := context.Background()
			adv, err := advisor.New(ctx, appCfg)
			if errors.Is(err, advisor.ErrNotConfigured) {
				return fmt.Errorf("%w; set it in the environment or %s", err, envFile)
			}
			if err != nil {
				return err
			}

			text, err := adv.Advise(ctx, input, *result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().String("env-file", ".env", "Environment file with GEMINI_API_KEY")
	return cmd
}

func envFiles(path string) []string {
	if path == "" {
		return nil
	}
	return []string{path}
}

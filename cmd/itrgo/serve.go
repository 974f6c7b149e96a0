package main

import (
	"context"
	"errors"
	"log"

	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			appCfg := config.LoadEnv(envFiles(envFile)...)
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				appCfg.Port = port
			}

			server.InitSentry(appCfg)
			defer server.FlushSentry()

			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}
			if appCfg.RegulatoryFile != "" && !cmd.Flags().Changed("regulatory-config") {
				loaded, err := config.NewInputParser().LoadRegulatory(appCfg.RegulatoryFile)
				if err != nil {
					return err
				}
				rules = *loaded
			}

			adv, err := newAdvisor(appCfg)
			if err != nil {
				return err
			}

			srv, err := server.New(server.Options{
				Engine:    newEngine(cmd, rules),
				Advisor:   adv,
				CacheSize: appCfg.CacheSize,
			})
			if err != nil {
				return err
			}
			return srv.Run(":" + appCfg.Port)
		},
	}

	cmd.Flags().String("port", "", "Listen port (default: PORT or 8080)")
	cmd.Flags().String("env-file", ".env", "Environment file")
	return cmd
}

// newAdvisor returns nil, disabling the advice endpoint, when no key is set
func newAdvisor(cfg config.AppConfig) (*advisor.Advisor, error) {
	adv, err := advisor.New(context.Background(), cfg)
	if errors.Is(err, advisor.ErrNotConfigured) {
		log.Println("GEMINI_API_KEY empty, advice endpoint disabled")
		return nil, nil
	}
	return adv, err
}


package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formvalidator/modules/signup"
	"github.com/dmitrymomot/formvalidator/pkg/clientip"
	"github.com/dmitrymomot/formvalidator/pkg/config"
	"github.com/dmitrymomot/formvalidator/pkg/httpserver"
	"github.com/dmitrymomot/formvalidator/pkg/logger"
	"github.com/dmitrymomot/formvalidator/pkg/requestid"
	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

func newServeCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the signup form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) > 0 {
				if err := config.LoadEnv(envFiles...); err != nil {
					return err
				}
			}

			var cfg appConfig
			if err := config.Load(&cfg); err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log := logger.New(
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithEnvironment(cfg.Env, cfg.Name),
				logger.WithLevelName(cfg.LogLevel),
				logger.WithContextExtractors(
					requestid.LoggerExtractor(),
					clientip.LoggerExtractor(),
				),
			)
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "load variables from these .env files first")
	return cmd
}

func serve(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	rules := validator.Default()

	svc := signup.NewService(cfg.Signup,
		signup.WithRules(rules),
		signup.WithLogger(log),
	)

	router := signup.Router(signup.RouterOptions{
		BasePath:       cfg.Signup.BasePath,
		Form:           svc,
		TrustedHeaders: cfg.TrustedHeaders,
		Health:         httpserver.HealthCheckHandler(log, func(context.Context) error {
			if rules.Len() == 0 {
				return fmt.Errorf("rule table is empty")
			}
			return nil
		}),
	})

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(l *slog.Logger, addr string) {
			l.Info("signup form stopped", slog.String("addr", addr))
		}),
	)
	return srv.Run(ctx, router)
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pageza/cartchef/backend/internal/router"
	"github.com/pageza/cartchef/backend/internal/server"
	"github.com/pageza/cartchef/backend/internal/service"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.openDB(ctx); err != nil {
		return err
	}
	a.openRedis(ctx)

	handler := router.SetupRouter(router.Dependencies{
		Config:            a.cfg,
		DB:                a.db,
		Redis:             a.redis,
		AuthService:       service.NewAuthService(a.cfg.JWTSecret),
		CartService:       service.NewCartService(a.db, a.imageSigner(ctx), a.log),
		SuggestionService: a.suggestionService(ctx),
		Logger:            a.log,
	})

	return server.New(a.cfg, handler, a.log).Run(ctx)
}

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/sahayak-backend/internal/app"
	"github.com/yungbote/sahayak-backend/internal/platform/shutdown"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := shutdown.NotifyContext(cmd.Context())
		defer stop()
		return withApp(ctx, func(ctx context.Context, a *app.App) error {
			return a.Run(ctx)
		})
	},
}

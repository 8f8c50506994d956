package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/sahayak-backend/internal/app"
	"github.com/yungbote/sahayak-backend/internal/config"
	"github.com/yungbote/sahayak-backend/internal/platform/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		a.Log.Error("server exited", "error", err)
		a.Close()
		os.Exit(1)
	}
}

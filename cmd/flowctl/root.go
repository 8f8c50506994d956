package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yungbote/sahayak-backend/internal/app"
	"github.com/yungbote/sahayak-backend/internal/config"
	"github.com/yungbote/sahayak-backend/internal/platform/media"
)

var (
	configPath string
	useMock    bool
	noColor    bool

	heading  = color.New(color.FgCyan, color.Bold).SprintFunc()
	warnings = color.New(color.FgYellow).SprintFunc()
	errStyle = color.New(color.FgRed, color.Bold).SprintFunc()
	okStyle  = color.New(color.FgGreen).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "flowctl",
	Short: "Run Sahayak teaching flows from the terminal",
	Long: `flowctl runs the same flows as the Sahayak HTTP API without a browser.

Configuration is read exactly like the server: defaults, then the YAML file named by
--config or SAHAYAK_CONFIG_PATH, then environment variables. Use --mock to work offline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		if configPath != "" {
			if err := os.Setenv("SAHAYAK_CONFIG_PATH", configPath); err != nil {
				return err
			}
		}
		if useMock {
			return os.Setenv("MODEL_PROVIDER", config.ProviderMock)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "use the offline mock model provider")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(serveCmd, askCmd, storyCmd, lessonPlanCmd, worksheetsCmd, scriptCmd, speechCmd, visualAidCmd)
}

// withApp loads configuration, wires the app and hands it to fn.
func withApp(ctx context.Context, fn func(context.Context, *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func printSection(title, body string) {
	fmt.Println(heading(title))
	fmt.Println(strings.TrimSpace(body))
	fmt.Println()
}

func printWarnings(ws []string) {
	if len(ws) == 0 {
		return
	}
	fmt.Println(warnings("degraded: " + strings.Join(ws, ", ")))
}

// writeDataURI decodes a data URI into path. Non-data URLs (placeholders) are printed instead.
func writeDataURI(path, uri string) error {
	if !strings.HasPrefix(uri, "data:") {
		fmt.Println(warnings("no media generated, placeholder: " + uri))
		return nil
	}
	m, err := media.ParseDataURI(uri)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, m.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Println(okStyle(fmt.Sprintf("wrote %s (%s, %d bytes)", path, m.MIMEType, len(m.Data))))
	return nil
}

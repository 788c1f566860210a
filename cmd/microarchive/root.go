package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"microarchive/internal/config"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "microarchive",
		Short: "Publish folders of scanned images as archival finding aids",
		Long: `microarchive lists the scanned images under a storage prefix, arranges them
into folders by their slash-separated names and publishes a website with an
EAD finding aid and a IIIF manifest.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newPublishCmd(),
		newInfoCmd(),
		newSitesCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// setupLogging installs the default slog logger described by cfg.
func setupLogging(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
	return logger
}

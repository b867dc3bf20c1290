package cmd

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jsphweid/scoretool/admin"
	"github.com/jsphweid/scoretool/dispatch"
	"github.com/jsphweid/scoretool/piece"
	"github.com/jsphweid/scoretool/transport"
)

var (
	debugAddr  string
	previewOut string
)

func init() {
	serveCmd.Flags().StringVar(&debugAddr, "debug-addr", "", "address for the read-only debug HTTP sidecar (disabled if empty)")
	serveCmd.Flags().StringVar(&previewOut, "preview-out", "preview.mid", "path the debug sidecar's export-preview writes to")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the JSON-RPC tool server on stdio",
	Long: `serve reads newline-delimited JSON-RPC requests from stdin and
writes responses to stdout, one tool call at a time. With --debug-addr
set, it also starts a read-only HTTP sidecar exposing a health check, a
document state dump, and a debounced MIDI export preview.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("63"))

func serve() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	doc := piece.New()
	disp := dispatch.New(doc)

	if debugAddr != "" {
		srv := admin.New(doc, previewOut, logger)
		go func() {
			logger.Info("debug sidecar listening", "addr", debugAddr)
			if err := http.ListenAndServe(debugAddr, srv.Handler()); err != nil {
				logger.Error("debug sidecar exited", "error", err)
			}
		}()
	}

	logger.Info(bannerStyle.Render("scoretool") + " serving JSON-RPC on stdio")

	if err := transport.Serve(os.Stdin, os.Stdout, disp, logger); err != nil {
		logger.Error("transport terminated", "error", err)
		os.Exit(1)
	}
}

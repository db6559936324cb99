package main

import (
	"github.com/spf13/cobra"

	"yomi/config"
	"yomi/logger"
	"yomi/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the yomi HTTP server",
	Long: `Start the yomi HTTP server.

The server provides:
  - GET  /api/health   - Status and active tokenizer strategy
  - POST /api/annotate - Annotate JSON {"text": "...", "translate": true}
  - POST /api/upload   - OCR and annotate a multipart image ("file")
  - POST /api/render   - HTML ruby markup for JSON {"text": "..."}

Examples:
  yomi serve                    # Start on the configured port (default 8080)
  yomi serve --port 3000        # Start on custom port
  yomi serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cm, l, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cm.Get()

		if cfg.Debug.DumpDir != "" {
			if err := logger.InitLogs(cfg.Debug.DumpDir); err != nil {
				return err
			}
		}

		eng, err := buildEngine(cfg, l)
		if err != nil {
			return err
		}
		provider, err := buildOCR(cfg, l)
		if err != nil {
			// uploads are refused, text annotation still works
			l.Warn("OCR provider unavailable", "provider", cfg.OCR.Provider, "error", err)
			provider = nil
		}

		deps := &server.Deps{
			Assembler:       eng.assembler,
			OCR:             provider,
			Kanji:           eng.kanji,
			Degraded:        eng.degraded,
			TranslateSource: cfg.Translate.Source,
			TranslateTarget: cfg.Translate.Target,
			MaxUploadBytes:  cfg.MaxUploadBytes(),
			DumpDir:         cfg.Debug.DumpDir,
			Logger:          l,
		}
		deps.SetTranslator(buildTranslator(cfg, l))

		// Translation settings follow config edits without a restart
		cm.OnChange(func(c *config.Config) {
			deps.SetTranslator(buildTranslator(c, l))
			l.Info("translation settings reloaded from config", "enabled", c.Translate.Enabled)
		})
		cm.WatchConfig()

		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		srv, err := server.New(server.Config{Host: host, Port: port, Deps: deps})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}

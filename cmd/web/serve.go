package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kifuliiru.net/kifuliiru-web/internal/handlers"
	"kifuliiru.net/kifuliiru-web/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = ":" + resolvePort()
		}
		// Dev mode: prefer KIFULIIRU_WEB_DEV, fallback to DEV
		devMode := os.Getenv("KIFULIIRU_WEB_DEV") != "" || os.Getenv("DEV") != ""

		cfg, bundle, err := loadSite()
		if err != nil {
			return err
		}
		srv, err := handlers.NewServer(cfg, bundle, devMode)
		if err != nil {
			return err
		}

		if devMode {
			w, err := watch.New(cfg.ContentDir, srv.PurgeCaches)
			if err != nil {
				log.Printf("content watcher unavailable: %v", err)
			} else {
				if err := w.Start(context.Background()); err != nil {
					log.Printf("content watcher: %v", err)
				}
				defer w.Stop()
			}
		}

		httpSrv := &http.Server{
			Addr:              addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		log.Printf("web listening on %s (devMode=%v)", addr, devMode)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

// resolvePort prefers KIFULIIRU_WEB_PORT, then the platform's PORT, else 8080.
func resolvePort() string {
	if p := os.Getenv("KIFULIIRU_WEB_PORT"); p != "" {
		return p
	}
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "HTTP listen address (default :$PORT)")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kifuliiru.net/kifuliiru-web/internal/config"
	"kifuliiru.net/kifuliiru-web/internal/i18n"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kifuliiru-web",
	Short: "Kifuliiru language learning site",
	Long:  "kifuliiru-web serves and builds the Kifuliiru language learning site: counting lessons, vocabulary, proverbs, and multi-language pages rendered from a content tree of JSON lessons and markup documents.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "site.yaml", "site manifest path")
}

// loadSite loads the manifest and the UI string bundles.
func loadSite() (*config.Site, *i18n.Bundle, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	bundle, err := i18n.Load(cfg.LocalesDir, cfg.DefaultLang, cfg.Languages)
	if err != nil {
		return nil, nil, fmt.Errorf("load locales: %w", err)
	}
	return cfg, bundle, nil
}

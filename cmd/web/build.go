package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kifuliiru.net/kifuliiru-web/internal/handlers"
	"kifuliiru.net/kifuliiru-web/internal/resolver"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a static version of the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")

		cfg, bundle, err := loadSite()
		if err != nil {
			return err
		}
		srv, err := handlers.NewServer(cfg, bundle, false)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return fmt.Errorf("create %s: %w", outDir, err)
		}
		if err := copyAssets(filepath.Join(cfg.PublicDir, "assets"), filepath.Join(outDir, "assets")); err != nil {
			return err
		}

		// Enumeration happens once, ahead of serving; the crawl below runs
		// against an in-process server so every page renders through the
		// exact request path.
		paths, err := enumeratePaths(srv.Resolver())
		if err != nil {
			return err
		}

		ts := httptest.NewServer(srv.Router())
		defer ts.Close()

		for _, route := range paths {
			if err := writeStaticPage(ts, outDir, route); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error generating %s: %v\n", route, err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "static site generated in %s (%d pages)\n", outDir, len(paths))
		return nil
	},
}

// enumeratePaths collects every servable route: the home page plus each
// section's static path set from the slug resolver.
func enumeratePaths(res *resolver.Resolver) ([]string, error) {
	paths := []string{"/"}
	for _, sec := range resolver.Sections {
		segs, err := res.EnumerateSection(sec.ID)
		if err != nil {
			return nil, fmt.Errorf("enumerate %s: %w", sec.ID, err)
		}
		if sec.HasRoot {
			paths = append(paths, "/"+sec.ID)
		}
		for _, seg := range segs {
			if len(seg) == 0 {
				continue // the section root is already included
			}
			paths = append(paths, "/"+sec.ID+"/"+strings.Join(seg, "/"))
		}
	}
	return paths, nil
}

func writeStaticPage(ts *httptest.Server, outDir, route string) error {
	resp, err := http.Get(ts.URL + route)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	file := filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(route, "/")), "index.html")
	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(file, body, 0o644)
}

func copyAssets(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return nil // no assets to copy
	}
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, raw, 0o644)
	})
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("out", "o", "public/site", "output directory")
}

package main

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed assets/*
var assetsFS embed.FS

// writeEmbeddedAssets copies the embedded scene assets into dir so the spec
// and its easing scripts load from disk and stay editable for hot reload.
// Files already present on disk are kept.
func writeEmbeddedAssets(dir string) error {
	entries, err := assetsFS.ReadDir("assets")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		dst := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		b, err := assetsFS.ReadFile("assets/" + entry.Name())
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, b, 0o644); err != nil {
			return err
		}
	}
	return nil
}

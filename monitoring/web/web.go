// Package web holds the monitoring page.
package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// DevEnvVar switches the page to the files on disk so that it can be
// edited without rebuilding.
const DevEnvVar = "SIMSYNC_MONITOR_DEV"

//go:embed dist/*
var dist embed.FS

// GetAssets returns the page files, from disk in development mode and
// from the binary otherwise.
func GetAssets() http.FileSystem {
	if dev, _ := strconv.ParseBool(os.Getenv(DevEnvVar)); dev {
		return diskAssets()
	}

	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(err)
	}

	return http.FS(sub)
}

func diskAssets() http.FileSystem {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("web: cannot locate source directory")
	}

	dir := filepath.Join(filepath.Dir(file), "dist")
	slog.Info("serving monitoring page from disk", "dir", dir)

	return http.Dir(dir)
}

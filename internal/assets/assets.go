// Copyright (c) 2026 Libris. All rights reserved.

/*
Package assets serves the bundled single-page frontend build.

Every path the API router does not claim lands here. Unauthenticated
visitors are redirected to the login page unless they request one of the
public entry points (login, register, static app chunks).
*/
package assets

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nlamduy/libris/internal/platform/ctxutil"
)

const (
	indexPage    = "index.html"
	fallbackPage = "404.html"
)

// publicPrefixes lists frontend paths reachable without a session.
var publicPrefixes = []string{"login", "register", "_app", "favicon.png", "robots.txt"}

// Handler serves files from the frontend build directory.
type Handler struct {
	dir    string
	logger *slog.Logger
}

// NewHandler creates a Handler rooted at dir.
func NewHandler(dir string, logger *slog.Logger) *Handler {
	return &Handler{dir: dir, logger: logger}
}

func (handler *Handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	path := strings.TrimPrefix(request.URL.Path, "/")

	if ctxutil.GetAuthUser(request.Context()) == nil && !isPublicPath(path) {
		handler.logger.Debug("asset_redirect_login", slog.String("path", path))
		http.Redirect(writer, request, "/login", http.StatusTemporaryRedirect)
		return
	}

	if path == "" || path == indexPage {
		handler.serveFile(writer, request, indexPage)
		return
	}

	if handler.exists(path) {
		handler.serveFile(writer, request, path)
		return
	}

	// Paths with an extension are real asset lookups; anything else is a
	// client-side route that resolves to a pre-rendered page or the fallback.
	if strings.Contains(path, ".") {
		http.Error(writer, "404", http.StatusNotFound)
		return
	}

	nested := path + "/" + indexPage
	if handler.exists(nested) {
		handler.serveFile(writer, request, nested)
		return
	}

	if handler.exists(fallbackPage) {
		handler.serveFile(writer, request, fallbackPage)
		return
	}
	http.Error(writer, "404", http.StatusNotFound)
}

// resolve maps a request path onto the build directory, confining it there.
func (handler *Handler) resolve(path string) string {
	return filepath.Join(handler.dir, filepath.Clean("/"+path))
}

func (handler *Handler) exists(path string) bool {
	info, err := os.Stat(handler.resolve(path))
	return err == nil && info.Mode().IsRegular()
}

func (handler *Handler) serveFile(writer http.ResponseWriter, request *http.Request, path string) {
	http.ServeFile(writer, request, handler.resolve(path))
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Package pwa serves the offline asset cache: the service worker, its
// registration script and the web app manifest, plus the endpoint the
// registration script reports install outcomes to.
package pwa

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"text/template"
)

//go:embed assets/*
var assets embed.FS

// Paths the handler is mounted on.
const (
	WorkerPath   = "/sw.js"
	RegisterPath = "/pwa/register.js"
	ManifestPath = "/manifest.webmanifest"
	IconPath     = "/pwa/icon.svg"
	EventsPath   = "/api/pwa/events"
	VersionPath  = "/api/pwa/version"
)

// Options configures the rendered assets.
type Options struct {
	AppName string
	// Version is bumped on each deploy; a new version means a new cache name,
	// which makes browsers install a fresh worker.
	Version string
	// Precache lists same-origin URLs fetched on install.
	Precache []string
}

// Assets holds the rendered files for one version.
type Assets struct {
	cacheName string
	version   string
	worker    []byte
	register  []byte
	manifest  []byte
	icon      []byte

	// OnInstalled, when set, is called for every classified install report.
	OnInstalled func(ctx context.Context, state State, clientVersion string)
}

// CachePrefix prefixes every cache the worker creates; older versions
// sharing it are deleted on activation.
func CachePrefix(appName string) string {
	return slug(appName) + "-"
}

// Build renders the embedded templates for opts.
func Build(opts Options) (*Assets, error) {
	if opts.Version == "" {
		return nil, fmt.Errorf("pwa: version is required")
	}
	if opts.AppName == "" {
		opts.AppName = "storefront"
	}
	if len(opts.Precache) == 0 {
		opts.Precache = []string{ManifestPath, RegisterPath, IconPath}
	}

	precache, err := json.Marshal(opts.Precache)
	if err != nil {
		return nil, fmt.Errorf("pwa: precache list: %w", err)
	}
	name, err := json.Marshal(opts.AppName)
	if err != nil {
		return nil, fmt.Errorf("pwa: app name: %w", err)
	}

	prefix := CachePrefix(opts.AppName)
	data := map[string]interface{}{
		"CacheName":    prefix + opts.Version,
		"CachePrefix":  prefix,
		"PrecacheJSON": string(precache),
		"Version":      opts.Version,
		"EventsURL":    EventsPath,
		"WorkerURL":    WorkerPath,
		"NameJSON":     string(name),
	}

	a := &Assets{cacheName: prefix + opts.Version, version: opts.Version}
	for file, dst := range map[string]*[]byte{
		"assets/sw.js":                &a.worker,
		"assets/register.js":          &a.register,
		"assets/manifest.webmanifest": &a.manifest,
	} {
		out, err := render(file, data)
		if err != nil {
			return nil, err
		}
		*dst = out
	}

	a.icon, err = assets.ReadFile("assets/icon.svg")
	if err != nil {
		return nil, fmt.Errorf("pwa: read icon: %w", err)
	}
	return a, nil
}

func render(file string, data interface{}) ([]byte, error) {
	src, err := assets.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("pwa: read %s: %w", file, err)
	}
	tpl, err := template.New(file).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("pwa: parse %s: %w", file, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("pwa: render %s: %w", file, err)
	}
	return buf.Bytes(), nil
}

func (a *Assets) CacheName() string { return a.cacheName }
func (a *Assets) Version() string   { return a.version }

// ServeWorker serves the service worker script. It must never be cached by
// HTTP caches or browsers would miss new versions.
func (a *Assets) ServeWorker(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Service-Worker-Allowed", "/")
	serve(w, r, "application/javascript; charset=utf-8", a.worker)
}

func (a *Assets) ServeRegister(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	serve(w, r, "application/javascript; charset=utf-8", a.register)
}

func (a *Assets) ServeManifest(w http.ResponseWriter, r *http.Request) {
	serve(w, r, "application/manifest+json", a.manifest)
}

func (a *Assets) ServeIcon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=86400")
	serve(w, r, "image/svg+xml", a.icon)
}

func serve(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprint(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(body) //nolint:errcheck
	}
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

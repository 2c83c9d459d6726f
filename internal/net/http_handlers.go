package net

import (
	"encoding/json"
	"log"
	nethttp "net/http"
	"net/http/pprof"
	"strings"

	"voidwake/mobs/internal/net/ws"
	"voidwake/mobs/internal/observability"
	"voidwake/mobs/logging"
	"voidwake/mobs/mobdef"
)

type HTTPHandlerConfig struct {
	ClientDir     string
	Logger        *log.Logger
	Publisher     logging.Publisher
	Observability observability.Config
}

func NewHTTPHandler(registry *mobdef.Registry, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/mobs", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		payload := struct {
			Mobs []string `json:"mobs"`
		}{Mobs: registry.Names()}

		data, err := json.Marshal(payload)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/api/mobs/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		ref := strings.TrimPrefix(r.URL.Path, "/api/mobs/")
		if ref == "" {
			httpError(w, "missing mob ref", nethttp.StatusBadRequest)
			return
		}

		def, ok := registry.Definition(ref)
		if !ok {
			httpError(w, "unknown mob", nethttp.StatusNotFound)
			return
		}

		doc, _ := registry.Document(ref)
		result := mobdef.Validate(doc)
		issues := result.Issues
		if issues == nil {
			issues = []mobdef.Issue{}
		}

		payload := struct {
			Ref        string               `json:"ref"`
			Definition mobdef.MobDefinition `json:"definition"`
			Issues     []mobdef.Issue       `json:"issues"`
		}{
			Ref:        ref,
			Definition: def,
			Issues:     issues,
		}

		data, err := json.Marshal(payload)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/api/reload", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		if err := registry.Reload(r.Context()); err != nil {
			logger.Printf("reload failed: %v", err)
			httpError(w, "reload failed", nethttp.StatusInternalServerError)
			return
		}

		payload := struct {
			Status string   `json:"status"`
			Mobs   []string `json:"mobs"`
		}{
			Status: "ok",
			Mobs:   registry.Names(),
		}

		data, err := json.Marshal(payload)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	wsHandler := ws.NewHandler(registry, ws.HandlerConfig{
		Logger:    logger,
		Publisher: cfg.Publisher,
	})
	mux.HandleFunc("/ws", wsHandler.Handle)

	if cfg.Observability.EnablePprofTrace {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	if cfg.ClientDir != "" {
		fs := nethttp.FileServer(nethttp.Dir(cfg.ClientDir))
		mux.Handle("/", fs)
	}

	return mux
}

func httpError(w nethttp.ResponseWriter, msg string, code int) {
	nethttp.Error(w, msg, code)
}

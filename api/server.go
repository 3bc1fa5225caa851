// Package api exposes the variants and their generated assets over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"prismplane/generator"
	"prismplane/model"
	"prismplane/storage"
)

// RegenerateFunc rewrites every asset and reports what was written.
type RegenerateFunc func(ctx context.Context) ([]generator.Result, error)

// Event is pushed to websocket clients.
type Event struct {
	Type    string             `json:"type"`
	Message string             `json:"message,omitempty"`
	Results []generator.Result `json:"results,omitempty"`
}

// Event types.
const (
	EventHello     = "hello"
	EventGenerated = "generated"
	EventError     = "error"
)

type Server struct {
	catalog    *model.Catalog
	store      *storage.Store
	regenerate RegenerateFunc
	ws         *WSConnectionManager
	upgrader   websocket.Upgrader

	// genMu serialises regeneration runs.
	genMu sync.Mutex
}

func NewServer(catalog *model.Catalog, store *storage.Store, regenerate RegenerateFunc) *Server {
	return &Server{
		catalog:    catalog,
		store:      store,
		regenerate: regenerate,
		ws:         NewWSConnectionManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/variants", s.handleVariants)
	mux.HandleFunc("/api/variants/", s.handleVariantByKey)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/ws", s.handleWS)
	mux.HandleFunc("/assets/", s.handleAsset)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"variants": s.catalog.Registry.Len(),
		"clients":  s.ws.Len(),
	})
}

// ---------- variants ----------

type variantResponse struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
	URL         string `json:"url"`
	Exists      bool   `json:"exists"`
	Digest      string `json:"digest,omitempty"`
}

func (s *Server) describe(v model.Variant) (variantResponse, error) {
	resp := variantResponse{
		Key:         v.Key,
		Title:       v.Title,
		Description: v.Description,
		Path:        s.store.AssetPath(v.Key, storage.ExtSVG),
		URL:         "/assets/" + storage.AssetName(v.Key, storage.ExtSVG),
	}
	data, err := s.store.ReadAsset(v.Key, storage.ExtSVG)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return resp, nil
		}
		return resp, err
	}
	resp.Exists = true
	resp.Digest = storage.Digest(data)
	return resp, nil
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	variants := s.catalog.Registry.Variants()
	out := make([]variantResponse, 0, len(variants))
	for _, v := range variants {
		resp, err := s.describe(v)
		if err != nil {
			log.Printf("[api] describe %s: %v", v.Key, err)
			http.Error(w, "failed to read assets", http.StatusInternalServerError)
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

type variantDetail struct {
	variantResponse
	Palette model.Palette `json:"palette"`
}

func (s *Server) handleVariantByKey(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/variants/")
	if key == "" {
		http.NotFound(w, r)
		return
	}

	v, err := s.catalog.Registry.Lookup(key)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	resp, err := s.describe(v)
	if err != nil {
		log.Printf("[api] describe %s: %v", v.Key, err)
		http.Error(w, "failed to read asset", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, variantDetail{variantResponse: resp, Palette: v.Palette})
}

// ---------- regenerate ----------

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if s.regenerate == nil {
		http.Error(w, "generator not configured", http.StatusInternalServerError)
		return
	}

	s.genMu.Lock()
	results, err := s.regenerate(r.Context())
	s.genMu.Unlock()

	if err != nil {
		log.Printf("[api] regenerate: %v", err)
		s.ws.Broadcast(Event{Type: EventError, Message: "generation failed"})
		http.Error(w, "generation failed", http.StatusInternalServerError)
		return
	}

	s.ws.Broadcast(Event{Type: EventGenerated, Results: results})
	writeJSON(w, http.StatusOK, results)
}

// ---------- websocket ----------

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[api] websocket upgrade: %v", err)
		return
	}
	s.ws.Add(conn)
	defer func() {
		s.ws.Remove(conn)
		conn.Close()
	}()

	if err := s.ws.WriteJSON(conn, Event{Type: EventHello}); err != nil {
		return
	}

	// The page never sends anything; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ---------- assets ----------

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	key, ext, ok := parseAssetName(strings.TrimPrefix(r.URL.Path, "/assets/"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := s.catalog.Registry.Lookup(key); err != nil {
		http.NotFound(w, r)
		return
	}

	data, err := s.store.ReadAsset(key, ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		log.Printf("[api] read asset %s: %v", key, err)
		http.Error(w, "failed to read asset", http.StatusInternalServerError)
		return
	}

	etag := `"` + storage.Digest(data) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	switch ext {
	case storage.ExtSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	case storage.ExtPNG:
		w.Header().Set("Content-Type", "image/png")
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(data)
	}
}

// parseAssetName splits "prismatic-cell-<key>.<ext>".
func parseAssetName(name string) (key, ext string, ok bool) {
	base, ext, found := strings.Cut(name, ".")
	if !found || (ext != storage.ExtSVG && ext != storage.ExtPNG) {
		return "", "", false
	}
	key, found = strings.CutPrefix(base, storage.Prefix+"-")
	if !found || key == "" || strings.ContainsAny(key, `/\`) {
		return "", "", false
	}
	return key, ext, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] writeJSON error: %v", err)
	}
}

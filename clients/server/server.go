// Package server exposes the composition engine over HTTP: render and
// thumbnail endpoints, layout analysis, and an in-memory brand logo store.
package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/aimagicbox/adcanvas/pkg/compose"
	"github.com/aimagicbox/adcanvas/pkg/design"
	"github.com/aimagicbox/adcanvas/pkg/encode"
	"github.com/aimagicbox/adcanvas/pkg/layout"
)

// ── Logo store ──

type storedLogo struct {
	Name string
	Data []byte
	Mime string
}

// logoStore holds uploaded brand logos in memory, keyed by UUID.
type logoStore struct {
	mu      sync.RWMutex
	logos   map[string]*storedLogo
	order   []string
	primary string
}

func newLogoStore() *logoStore {
	return &logoStore{logos: make(map[string]*storedLogo)}
}

func (ls *logoStore) add(name string, data []byte, mimeType string) (string, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if len(ls.order) >= design.MaxLogos {
		return "", fmt.Errorf("logo limit of %d reached", design.MaxLogos)
	}
	id := uuid.NewString()
	ls.logos[id] = &storedLogo{Name: name, Data: data, Mime: mimeType}
	ls.order = append(ls.order, id)
	if ls.primary == "" {
		ls.primary = id
	}
	return id, nil
}

func (ls *logoStore) get(id string) (*storedLogo, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	l, ok := ls.logos[id]
	return l, ok
}

func (ls *logoStore) remove(id string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if _, ok := ls.logos[id]; !ok {
		return false
	}
	delete(ls.logos, id)
	for i, v := range ls.order {
		if v == id {
			ls.order = append(ls.order[:i], ls.order[i+1:]...)
			break
		}
	}
	if ls.primary == id {
		ls.primary = ""
		if len(ls.order) > 0 {
			ls.primary = ls.order[0]
		}
	}
	return true
}

func (ls *logoStore) setPrimary(id string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if _, ok := ls.logos[id]; !ok {
		return false
	}
	ls.primary = id
	return true
}

// brandAssets converts the store into the renderer's brand kit, encoding
// each logo as a data URL.
func (ls *logoStore) brandAssets() design.BrandAssets {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	var b design.BrandAssets
	for i, id := range ls.order {
		l := ls.logos[id]
		b.Logos = append(b.Logos, design.Logo{
			Name:    l.Name,
			DataURL: "data:" + l.Mime + ";base64," + base64.StdEncoding.EncodeToString(l.Data),
		})
		if id == ls.primary {
			b.PrimaryLogoIndex = i
		}
	}
	return b
}

func (ls *logoStore) list() []map[string]any {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	out := make([]map[string]any, 0, len(ls.order))
	for _, id := range ls.order {
		l := ls.logos[id]
		out = append(out, map[string]any{
			"id":      id,
			"name":    l.Name,
			"mime":    l.Mime,
			"size":    len(l.Data),
			"primary": id == ls.primary,
			"url":     "/api/brand/logos/" + id,
		})
	}
	return out
}

// ── Server ──

// Server wires the renderer and analyzer behind a chi router.
type Server struct {
	renderer *compose.Renderer
	analyzer *layout.Analyzer
	logos    *logoStore
	limiter  *rate.Limiter
	log      *slog.Logger
}

// New builds a Server. Analysis requests share a small token bucket so a
// burst of uploads cannot monopolize the vision backend.
func New(r *compose.Renderer, a *layout.Analyzer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		renderer: r,
		analyzer: a,
		logos:    newLogoStore(),
		limiter:  rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		log:      log,
	}
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/render", s.handleRender)
	r.Post("/api/thumbnail", s.handleThumbnail)
	r.With(s.throttleAnalyze).Post("/api/analyze", s.handleAnalyze)

	r.Route("/api/brand/logos", func(r chi.Router) {
		r.Get("/", s.handleListLogos)
		r.Post("/", s.handleUploadLogo)
		r.Get("/{id}", s.handleGetLogo)
		r.Delete("/{id}", s.handleDeleteLogo)
		r.Put("/{id}/primary", s.handleSetPrimaryLogo)
	})
	return r
}

// ListenAndServe runs the API on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("api listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func (s *Server) throttleAnalyze(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "analysis rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ── Render ──

// renderRequest is the shared body of the render and thumbnail endpoints.
// Design is a sparse override merged over the canonical defaults; Brand,
// when omitted, falls back to the server's uploaded logo store.
type renderRequest struct {
	Campaign design.Campaign     `json:"campaign"`
	ImageID  string              `json:"imageId"`
	Size     string              `json:"size"`
	Width    int                 `json:"width"`
	Height   int                 `json:"height"`
	Plan     design.Plan         `json:"plan"`
	Design   *design.Override    `json:"design"`
	Patch    map[string]any      `json:"designPatch"`
	Brand    *design.BrandAssets `json:"brand"`
}

func (s *Server) buildRequest(req renderRequest) (compose.Request, design.ProjectSize, error) {
	size, err := design.SizeByName(req.Size, req.Width, req.Height)
	if err != nil {
		return compose.Request{}, design.ProjectSize{}, err
	}

	img, ok := pickImage(req.Campaign, req.ImageID)
	if !ok {
		return compose.Request{}, design.ProjectSize{}, fmt.Errorf("campaign has no image %q", req.ImageID)
	}

	base := req.Design.Apply(design.Canonical())
	base, err = design.ApplyPatch(base, req.Patch)
	if err != nil {
		return compose.Request{}, design.ProjectSize{}, err
	}
	settings := design.EffectiveDesign(base, img, req.Campaign.Headline)

	brand := s.logos.brandAssets()
	if req.Brand != nil {
		brand = *req.Brand
	}

	plan := req.Plan
	if plan == "" {
		plan = design.PlanStarter
	}

	return compose.Request{
		Image:    img,
		Campaign: req.Campaign,
		Design:   settings,
		Brand:    brand,
		Plan:     plan,
	}, size, nil
}

func pickImage(c design.Campaign, id string) (design.CampaignImage, bool) {
	if id == "" {
		if len(c.Images) == 0 {
			return design.CampaignImage{}, false
		}
		return c.Images[0], true
	}
	for _, img := range c.Images {
		if img.ID == id {
			return img, true
		}
	}
	return design.CampaignImage{}, false
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	creq, size, err := s.buildRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	img := s.renderer.Render(r.Context(), size.Width, size.Height, creq)
	w.Header().Set("Content-Type", "image/png")
	if err := encode.EncodePNG(w, img); err != nil {
		s.log.Warn("write render response", "error", err)
	}
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	creq, size, err := s.buildRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	uri := s.renderer.Thumbnail(r.Context(), size, creq)
	writeJSON(w, http.StatusOK, map[string]string{"dataUri": uri})
}

// ── Analyze ──

type analyzeRequest struct {
	Src   string `json:"src"`
	UseAI bool   `json:"useAi"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}
	if req.Src == "" {
		writeError(w, http.StatusBadRequest, "src is required")
		return
	}

	ov, err := s.analyzer.Analyze(r.Context(), req.Src, req.UseAI)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"design": ov})
}

// ── Logos ──

func (s *Server) handleUploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "parse form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read file: "+err.Error())
		return
	}
	mimeType := mime.TypeByExtension(filepath.Ext(header.Filename))
	if mimeType == "" {
		mimeType = "image/png"
	}

	id, err := s.logos.add(header.Filename, data, mimeType)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":   id,
		"name": header.Filename,
		"url":  "/api/brand/logos/" + id,
	})
}

func (s *Server) handleListLogos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.logos.list())
}

func (s *Server) handleGetLogo(w http.ResponseWriter, r *http.Request) {
	l, ok := s.logos.get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", l.Mime)
	w.Write(l.Data)
}

func (s *Server) handleDeleteLogo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.logos.remove(id) {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

func (s *Server) handleSetPrimaryLogo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.logos.setPrimary(id) {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "primary", "id": id})
}

// ── Helpers ──

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

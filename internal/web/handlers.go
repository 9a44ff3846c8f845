// Package web serves headless card renders over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/render"
	"github.com/Gaurav-Gosain/pixelcard/internal/theme"
)

// CardHandler renders cards on request.
type CardHandler struct {
	registry      *config.Registry
	reducedMotion bool
	logger        *log.Logger
}

// NewCardHandler creates a handler resolving variants through reg.
func NewCardHandler(reg *config.Registry, reducedMotion bool, logger *log.Logger) *CardHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &CardHandler{registry: reg, reducedMotion: reducedMotion, logger: logger}
}

// RegisterRoutes mounts the handler on r.
func (h *CardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.healthz)
	r.Get("/variants", h.variants)
	r.Get("/cards/{file}", h.card)
}

func (h *CardHandler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

type variantJSON struct {
	Name           string `json:"name"`
	Gap            int    `json:"gap"`
	Speed          int    `json:"speed"`
	Colors         string `json:"colors"`
	ActiveColor    string `json:"active_color,omitempty"`
	RespondToFocus bool   `json:"respond_to_focus"`
	BuiltIn        bool   `json:"builtin"`
}

func (h *CardHandler) variants(w http.ResponseWriter, _ *http.Request) {
	all := h.registry.All()
	out := make([]variantJSON, 0, len(all))
	for _, v := range all {
		out = append(out, variantJSON{
			Name:           v.Name,
			Gap:            v.Gap,
			Speed:          v.Speed,
			Colors:         v.Colors,
			ActiveColor:    v.ActiveColor,
			RespondToFocus: v.RespondToFocus,
			BuiltIn:        v.BuiltIn,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.logger.Error("failed to encode variants", "err", err)
	}
}

func (h *CardHandler) card(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	name := strings.TrimSuffix(file, ext)
	if ext != ".txt" && ext != ".png" {
		http.NotFound(w, r)
		return
	}
	if !h.registry.Has(name) {
		http.Error(w, fmt.Sprintf("unknown variant %q", name), http.StatusNotFound)
		return
	}

	req, scale, err := h.parseRequest(name, r)
	if err == nil && ext == ".png" {
		err = render.CheckPNG(req.Width, req.Height, scale)
	}
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := render.Card(r.Context(), req)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// The timeout middleware answers once the deadline passes.
		h.logger.Warn("render abandoned", "variant", name, "err", err)
		return
	case err != nil:
		h.logger.Error("render failed", "variant", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-Pixelcard-Frames", strconv.FormatUint(res.Frames, 10))
	if ext == ".png" {
		w.Header().Set("Content-Type", "image/png")
		if err := res.PNG(w, scale); err != nil {
			h.logger.Error("failed to write png", "variant", name, "err", err)
		}
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(res.Framed() + "\n"))
}

// parseRequest reads the render query parameters. Unset parameters take
// the variant's values or the snapshot defaults.
func (h *CardHandler) parseRequest(name string, r *http.Request) (render.Request, int, error) {
	q := r.URL.Query()
	spec := config.CardSpec{Label: q.Get("label"), Variant: name}

	req := render.Request{
		Width:         config.DefaultSnapshotWidth,
		Height:        config.DefaultSnapshotHeight,
		Frames:        config.DefaultSnapshotFrames,
		Warmup:        config.DefaultSnapshotFrames,
		ReducedMotion: h.reducedMotion,
		Logger:        h.logger,
	}
	scale := config.DefaultPNGScale

	ints := []struct {
		key string
		dst *int
	}{
		{"width", &req.Width},
		{"height", &req.Height},
		{"frames", &req.Frames},
		{"scale", &scale},
	}
	for _, p := range ints {
		if err := intParam(q.Get(p.key), p.key, p.dst); err != nil {
			return req, 0, err
		}
	}

	if v := q.Get("gap"); v != "" {
		gap, err := strconv.Atoi(v)
		if err != nil || gap < 1 {
			return req, 0, fmt.Errorf("gap must be a positive integer")
		}
		spec.Gap = &gap
	}
	if v := q.Get("speed"); v != "" {
		speed, err := strconv.Atoi(v)
		if err != nil || speed < 0 || speed > 100 {
			return req, 0, fmt.Errorf("speed must be 0..100")
		}
		spec.Speed = &speed
	}
	if v := q.Get("colors"); v != "" {
		if !theme.ValidPalette(v) {
			return req, 0, fmt.Errorf("invalid colors %q", v)
		}
		spec.Colors = &v
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, 0, fmt.Errorf("seed must be an unsigned integer")
		}
		req.Seed = seed
	}
	if v := q.Get("reduced_motion"); v != "" {
		reduced, err := strconv.ParseBool(v)
		if err != nil {
			return req, 0, fmt.Errorf("reduced_motion must be a boolean")
		}
		req.ReducedMotion = reduced
	}
	dir, err := render.ParseDirection(q.Get("direction"))
	if err != nil {
		return req, 0, err
	}
	req.Direction = dir

	req.Card = config.Resolve(spec, h.registry)
	return req, scale, nil
}

func intParam(v, key string, dst *int) error {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer", key)
	}
	*dst = n
	return nil
}

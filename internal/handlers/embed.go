package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vidfriends/videoembed/internal/embed"
	"github.com/vidfriends/videoembed/internal/logging"
)

// EmbedHandler renders player markup for a video URL.
type EmbedHandler struct {
	Renderer EmbedRenderer
}

type embedResponse struct {
	Provider string `json:"provider"`
	VideoID  string `json:"videoId"`
	HTML     string `json:"html"`
}

type notFoundResponse struct {
	Error string `json:"error"`
	HTML  string `json:"html"`
}

// Render handles GET /api/v1/embed?url=...&<option>=...
func (h EmbedHandler) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Renderer == nil {
		logger.Error("embed renderer unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "embed renderer unavailable")
		return
	}

	query := r.URL.Query()
	rawURL := strings.TrimSpace(query.Get("url"))
	if rawURL == "" {
		respondError(ctx, w, http.StatusBadRequest, "url is required")
		return
	}

	opts, err := embed.ParseOptions(query, "url")
	if err != nil {
		logger.Warn("invalid embed options", "error", err)
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	ref, err := embed.Resolve(rawURL)
	if err != nil {
		logger.Info("no embeddable video", "url", rawURL, "error", err)
		respondJSON(ctx, w, http.StatusNotFound, notFoundResponse{
			Error: err.Error(),
			HTML:  h.Renderer.NotFound(opts.FailSilently),
		})
		return
	}

	html, err := h.Renderer.EmbedRef(ref, opts)
	if err != nil {
		if errors.Is(err, embed.ErrMissingRequiredOption) {
			respondError(ctx, w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("render embed", "provider", ref.Provider.String(), "videoId", ref.ID, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to render embed")
		return
	}

	respondJSON(ctx, w, http.StatusOK, embedResponse{
		Provider: ref.Provider.String(),
		VideoID:  ref.ID,
		HTML:     html,
	})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/vidfriends/videoembed/internal/embed"
	"github.com/vidfriends/videoembed/internal/logging"
	"github.com/vidfriends/videoembed/internal/videos"
)

// ThumbnailHandler renders thumbnail images for a video URL.
type ThumbnailHandler struct {
	Renderer EmbedRenderer
}

type thumbnailResponse struct {
	Provider string `json:"provider"`
	VideoID  string `json:"videoId"`
	Size     string `json:"size"`
	URL      string `json:"url"`
	HTML     string `json:"html"`
}

// Render handles GET /api/v1/thumbnail?url=...&size=...&alt=...
func (h ThumbnailHandler) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Renderer == nil {
		logger.Error("thumbnail renderer unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "thumbnail renderer unavailable")
		return
	}

	query := r.URL.Query()
	rawURL := strings.TrimSpace(query.Get("url"))
	if rawURL == "" {
		respondError(ctx, w, http.StatusBadRequest, "url is required")
		return
	}

	opts, err := parseThumbnailOptions(query.Get)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	size := strings.TrimSpace(query.Get("size"))
	if size == "" {
		size = embed.DefaultThumbnailSize
	}

	ref, src, err := h.Renderer.ThumbnailURL(ctx, rawURL, size)
	switch {
	case err == nil:
	case errors.Is(err, embed.ErrUnsupportedThumbnailSize):
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, embed.ErrUnrecognizedProvider), errors.Is(err, embed.ErrIDExtractionFailed), errors.Is(err, videos.ErrThumbnailNotFound):
		respondJSON(ctx, w, http.StatusNotFound, notFoundResponse{
			Error: err.Error(),
			HTML:  h.Renderer.NotFound(opts.FailSilently),
		})
		return
	case errors.Is(err, embed.ErrThumbnailSourceUnavailable), errors.Is(err, videos.ErrSourceUnavailable):
		respondError(ctx, w, http.StatusServiceUnavailable, "thumbnails unavailable for this provider")
		return
	default:
		logger.Error("thumbnail lookup failed", "url", rawURL, "size", size, "error", err)
		respondError(ctx, w, http.StatusBadGateway, "thumbnail lookup failed")
		return
	}

	respondJSON(ctx, w, http.StatusOK, thumbnailResponse{
		Provider: ref.Provider.String(),
		VideoID:  ref.ID,
		Size:     size,
		URL:      src,
		HTML:     h.Renderer.Image(src, opts),
	})
}

func parseThumbnailOptions(get func(string) string) (embed.ThumbnailOptions, error) {
	opts := embed.ThumbnailOptions{
		Alt:   get("alt"),
		Class: get("class"),
	}

	var err error
	if opts.Width, err = optionalInt(get, "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = optionalInt(get, "height"); err != nil {
		return opts, err
	}
	if v := get("failSilently"); v != "" {
		if opts.FailSilently, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New("failSilently must be a boolean")
		}
	}
	return opts, nil
}

func optionalInt(get func(string) string, name string) (int, error) {
	v := strings.TrimSpace(get(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return n, nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vidfriends/videoembed/internal/embed"
	"github.com/vidfriends/videoembed/internal/logging"
	"github.com/vidfriends/videoembed/internal/models"
)

// VimeoThumbnailHandler accepts thumbnail URLs for Vimeo videos. Vimeo
// thumbnails cannot be derived from the id, so they are pushed here.
type VimeoThumbnailHandler struct {
	Thumbnails ThumbnailStore
	Cache      ThumbnailInvalidator
	NowFunc    func() time.Time
}

type vimeoThumbnailsRequest struct {
	VideoID string `json:"videoId"`
	URL     string `json:"url"`
	Small   string `json:"small"`
	Medium  string `json:"medium"`
	Large   string `json:"large"`
}

type vimeoThumbnailsResponse struct {
	VideoID   string    `json:"videoId"`
	Small     string    `json:"small"`
	Medium    string    `json:"medium"`
	Large     string    `json:"large"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Put handles PUT /api/v1/thumbnails/vimeo.
func (h VimeoThumbnailHandler) Put(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Thumbnails == nil {
		logger.Error("thumbnail store unavailable")
		respondError(ctx, w, http.StatusServiceUnavailable, "thumbnail storage unavailable")
		return
	}

	var req vimeoThumbnailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid vimeo thumbnails payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	videoID, err := vimeoVideoID(req)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	thumbs := models.VimeoThumbnails{
		VideoID:   videoID,
		Small:     strings.TrimSpace(req.Small),
		Medium:    strings.TrimSpace(req.Medium),
		Large:     strings.TrimSpace(req.Large),
		UpdatedAt: h.now(),
	}
	if thumbs.Small == "" && thumbs.Medium == "" && thumbs.Large == "" {
		respondError(ctx, w, http.StatusBadRequest, "at least one of small, medium or large is required")
		return
	}
	for _, u := range []string{thumbs.Small, thumbs.Medium, thumbs.Large} {
		if u != "" && !validImageURL(u) {
			respondError(ctx, w, http.StatusBadRequest, "thumbnail urls must be absolute http(s) or protocol-relative urls")
			return
		}
	}

	if err := h.Thumbnails.Upsert(ctx, thumbs); err != nil {
		logger.Error("store vimeo thumbnails", "videoId", videoID, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to store thumbnails")
		return
	}
	if h.Cache != nil {
		h.Cache.Invalidate(videoID)
	}

	respondJSON(ctx, w, http.StatusOK, vimeoThumbnailsResponse{
		VideoID:   thumbs.VideoID,
		Small:     thumbs.Small,
		Medium:    thumbs.Medium,
		Large:     thumbs.Large,
		UpdatedAt: thumbs.UpdatedAt,
	})
}

func (h VimeoThumbnailHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc().UTC()
	}
	return time.Now().UTC()
}

// vimeoVideoID takes the explicit id or resolves it from a Vimeo URL.
func vimeoVideoID(req vimeoThumbnailsRequest) (string, error) {
	if id := strings.TrimSpace(req.VideoID); id != "" {
		return id, nil
	}
	if req.URL == "" {
		return "", errors.New("videoId or url is required")
	}
	ref, err := embed.Resolve(req.URL)
	if err != nil || ref.Provider != embed.Vimeo {
		return "", errors.New("url is not a vimeo video")
	}
	return ref.ID, nil
}

func validImageURL(raw string) bool {
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

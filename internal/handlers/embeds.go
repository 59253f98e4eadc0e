package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidfriends/videoembed/internal/embed"
	"github.com/vidfriends/videoembed/internal/logging"
	"github.com/vidfriends/videoembed/internal/models"
	"github.com/vidfriends/videoembed/internal/repositories"
)

// PublishHandler renders embed fragments, records them and hands them to the
// publisher for upload.
type PublishHandler struct {
	Renderer  EmbedRenderer
	Embeds    EmbedStore
	Publisher FragmentPublisher
	NowFunc   func() time.Time
}

type publishRequest struct {
	URL     string            `json:"url"`
	Options map[string]string `json:"options"`
}

type publishedEmbedView struct {
	ID          string            `json:"id"`
	Provider    string            `json:"provider"`
	VideoID     string            `json:"videoId"`
	SourceURL   string            `json:"sourceUrl"`
	Options     map[string]string `json:"options,omitempty"`
	HTML        string            `json:"html"`
	Location    string            `json:"location,omitempty"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	PublishedAt *time.Time        `json:"publishedAt,omitempty"`
}

type publishResponse struct {
	Embed publishedEmbedView `json:"embed"`
}

type listEmbedsResponse struct {
	Embeds []publishedEmbedView `json:"embeds"`
}

// Create handles POST /api/v1/embeds.
func (h PublishHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Renderer == nil || h.Embeds == nil || h.Publisher == nil || !h.Publisher.Enabled() {
		logger.Error("publish dependencies unavailable", "hasRenderer", h.Renderer != nil, "hasEmbeds", h.Embeds != nil, "hasPublisher", h.Publisher != nil)
		respondError(ctx, w, http.StatusServiceUnavailable, "publishing unavailable")
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid publish payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		respondError(ctx, w, http.StatusBadRequest, "url is required")
		return
	}

	values := url.Values{}
	for name, value := range req.Options {
		values.Set(name, value)
	}
	opts, err := embed.ParseOptions(values)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	ref, err := embed.Resolve(req.URL)
	if err != nil {
		respondError(ctx, w, http.StatusNotFound, err.Error())
		return
	}

	html, err := h.Renderer.EmbedRef(ref, opts)
	if err != nil {
		if errors.Is(err, embed.ErrMissingRequiredOption) {
			respondError(ctx, w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("render embed for publishing", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to render embed")
		return
	}

	record := models.PublishedEmbed{
		ID:          uuid.NewString(),
		Provider:    ref.Provider.String(),
		VideoID:     ref.ID,
		SourceURL:   req.URL,
		Options:     req.Options,
		Fingerprint: fingerprint(ref, html),
		HTML:        html,
		Status:      models.PublishStatusPending,
		CreatedAt:   h.now(),
	}

	if err := h.Embeds.Create(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondError(ctx, w, http.StatusConflict, "embed already published")
			return
		}
		logger.Error("record published embed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to record embed")
		return
	}

	if err := h.Publisher.Enqueue(ctx, record); err != nil {
		logger.Error("enqueue fragment upload", "embedId", record.ID, "error", err)
		h.discard(ctx, record.ID)
		respondError(ctx, w, http.StatusServiceUnavailable, "failed to schedule upload")
		return
	}

	logger.Info("embed queued for publishing", "embedId", record.ID, "provider", record.Provider, "videoId", record.VideoID, "options", optionNames(req.Options))
	respondJSON(ctx, w, http.StatusAccepted, publishResponse{Embed: viewOf(record)})
}

// List handles GET /api/v1/embeds?provider=...&limit=...
func (h PublishHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Embeds == nil {
		logger.Error("embed store unavailable")
		respondError(ctx, w, http.StatusServiceUnavailable, "published embeds unavailable")
		return
	}

	query := r.URL.Query()

	var provider string
	if name := strings.TrimSpace(query.Get("provider")); name != "" {
		p, ok := embed.ParseProvider(name)
		if !ok {
			respondError(ctx, w, http.StatusBadRequest, "unknown provider")
			return
		}
		provider = p.String()
	}

	limit := 0
	if v := strings.TrimSpace(query.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(ctx, w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	embeds, err := h.Embeds.List(ctx, provider, limit)
	if err != nil {
		logger.Error("list published embeds", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to list embeds")
		return
	}

	views := make([]publishedEmbedView, 0, len(embeds))
	for _, e := range embeds {
		views = append(views, viewOf(e))
	}
	respondJSON(ctx, w, http.StatusOK, listEmbedsResponse{Embeds: views})
}

// discard removes a record whose upload was never queued so the same fragment
// can be published again. It outlives a cancelled request.
func (h PublishHandler) discard(ctx context.Context, id string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := h.Embeds.Delete(ctx, id); err != nil {
		logging.FromContext(ctx).Error("discard unqueued embed", "embedId", id, "error", err)
	}
}

func (h PublishHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc().UTC()
	}
	return time.Now().UTC()
}

// fingerprint identifies a rendered fragment; identical markup for the same
// video is published once.
func fingerprint(ref embed.VideoRef, html string) string {
	sum := sha256.Sum256([]byte(ref.Provider.String() + "\x00" + ref.ID + "\x00" + html))
	return hex.EncodeToString(sum[:])
}

func viewOf(e models.PublishedEmbed) publishedEmbedView {
	return publishedEmbedView{
		ID:          e.ID,
		Provider:    e.Provider,
		VideoID:     e.VideoID,
		SourceURL:   e.SourceURL,
		Options:     e.Options,
		HTML:        e.HTML,
		Location:    e.Location,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		PublishedAt: e.PublishedAt,
	}
}

// optionNames lists the request's option names in a stable order for logs.
func optionNames(options map[string]string) []string {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

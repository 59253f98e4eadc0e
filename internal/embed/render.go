package embed

import (
	"context"
	"fmt"
)

// NotFoundMessage is the untranslated text of the not-found fragment.
const NotFoundMessage = "Sorry, video does not exists"

// ThumbnailSource supplies thumbnail URLs for providers whose thumbnails
// cannot be derived from the video id alone. Implementations own their
// timeout and failure policy.
type ThumbnailSource interface {
	Thumbnail(ctx context.Context, provider Provider, videoID, size string) (string, error)
}

// RendererConfig wires the renderer's collaborators. Nil fields fall back to
// HTMLMarkup, an identity translator and a <script> tag loader; a nil
// Thumbnails source disables Vimeo thumbnails.
type RendererConfig struct {
	Markup     Markup
	Translator Translator
	Scripts    ScriptLoader
	Thumbnails ThumbnailSource
}

// Renderer builds embed markup. It holds no mutable state and is safe for
// concurrent use.
type Renderer struct {
	markup     Markup
	translator Translator
	scripts    ScriptLoader
	thumbnails ThumbnailSource
}

// NewRenderer constructs a Renderer from cfg.
func NewRenderer(cfg RendererConfig) *Renderer {
	if cfg.Markup == nil {
		cfg.Markup = HTMLMarkup{}
	}
	if cfg.Translator == nil {
		cfg.Translator = identityTranslator{}
	}
	if cfg.Scripts == nil {
		cfg.Scripts = scriptTagLoader{markup: cfg.Markup}
	}
	return &Renderer{
		markup:     cfg.Markup,
		translator: cfg.Translator,
		scripts:    cfg.Scripts,
		thumbnails: cfg.Thumbnails,
	}
}

// Embed renders the player for rawURL. Unrecognised URLs produce the
// not-found fragment (or "" with FailSilently); the only error returned is
// ErrMissingRequiredOption.
func (r *Renderer) Embed(rawURL string, opts Options) (string, error) {
	ref, err := Resolve(rawURL)
	if err != nil {
		return r.NotFound(opts.FailSilently), nil
	}
	return r.EmbedRef(ref, opts)
}

// EmbedRef renders the player for an already resolved reference.
func (r *Renderer) EmbedRef(ref VideoRef, opts Options) (string, error) {
	if !ref.Found() {
		return r.NotFound(opts.FailSilently), nil
	}

	switch ref.Provider {
	case YouTube:
		return r.youTube(ref.ID, DefaultYouTubeConfig().With(opts))
	case Vimeo:
		return r.vimeo(ref.ID, DefaultVimeoConfig().With(opts)), nil
	case Dailymotion:
		return r.dailymotion(ref.ID, DefaultDailymotionConfig().With(opts)), nil
	case Wistia:
		return r.wistia(ref.ID, DefaultWistiaConfig().With(opts)), nil
	case BBC:
		return r.bbc(ref.ID, DefaultBBCConfig().With(opts)), nil
	default:
		return r.NotFound(opts.FailSilently), nil
	}
}

// NotFound renders the fragment shown when no video could be resolved.
func (r *Renderer) NotFound(failSilently bool) string {
	if failSilently {
		return ""
	}
	return r.markup.Element("div", r.translator.Translate(NotFoundMessage), Attrs{{Name: "class", Value: "error"}})
}

func (r *Renderer) iframe(attrs Attrs) string {
	return r.markup.Element("iframe", "", attrs)
}

func (r *Renderer) youTube(id string, cfg YouTubeConfig) (string, error) {
	if cfg.EnableJSAPI && cfg.ID == "" {
		return "", fmt.Errorf("%w: youtube enablejsapi requires an iframe id", ErrMissingRequiredOption)
	}

	attrs := Attrs{}.
		AddInt("width", cfg.Width).
		AddInt("height", cfg.Height).
		Add("src", cfg.Src(id)).
		AddInt("frameborder", cfg.Frameborder).
		AddFlag("allowfullscreen", cfg.AllowFullscreen).
		Add("autoplay", boolInt(cfg.Autoplay)).
		AddIfSet("allow", cfg.Allow).
		AddIfSet("class", cfg.Class).
		AddIfSet("id", cfg.ID)

	out := r.iframe(attrs)
	if cfg.EnableJSAPI {
		out = r.scripts.Script(youTubeIframeAPI) + out
	}
	return out, nil
}

func (r *Renderer) vimeo(id string, cfg VimeoConfig) string {
	fullscreen := boolInt(cfg.AllowFullscreen)
	return r.iframe(Attrs{}.
		Add("src", cfg.Src(id)).
		AddInt("width", cfg.Width).
		AddInt("height", cfg.Height).
		AddInt("frameborder", cfg.Frameborder).
		Add("webkitAllowFullScreen", fullscreen).
		Add("mozallowfullscreen", fullscreen).
		AddFlag("allowfullscreen", cfg.AllowFullscreen))
}

func (r *Renderer) dailymotion(id string, cfg DailymotionConfig) string {
	return r.iframe(standardIframe(cfg.Src(id), cfg.Width, cfg.Height, cfg.Frameborder, cfg.AllowFullscreen))
}

func (r *Renderer) wistia(id string, cfg WistiaConfig) string {
	return r.iframe(standardIframe(cfg.Src(id), cfg.Width, cfg.Height, cfg.Frameborder, cfg.AllowFullscreen))
}

func (r *Renderer) bbc(id string, cfg BBCConfig) string {
	return r.iframe(standardIframe(cfg.Src(id), cfg.Width, cfg.Height, cfg.Frameborder, cfg.AllowFullscreen))
}

func standardIframe(src string, width, height, frameborder int, fullscreen bool) Attrs {
	return Attrs{}.
		Add("src", src).
		AddInt("width", width).
		AddInt("height", height).
		AddInt("frameborder", frameborder).
		AddFlag("allowfullscreen", fullscreen)
}

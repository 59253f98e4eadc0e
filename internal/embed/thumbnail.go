package embed

import (
	"context"
	"errors"
	"fmt"
)

// DefaultThumbnailSize is used when no size is requested.
const DefaultThumbnailSize = "thumb"

// youTubeThumbnailSizes maps size keys to i.ytimg.com image names.
var youTubeThumbnailSizes = map[string]string{
	"thumb":  "default",       // 120x90
	"large":  "0",             // 480x360
	"thumb1": "1",             // 120x90 at 25%
	"thumb2": "2",             // 120x90 at 50%
	"thumb3": "3",             // 120x90 at 75%
	"wide":   "mqdefault",     // 320x180
	"maxres": "maxresdefault", // not always available
}

// vimeoThumbnailSizes maps size keys to the sizes a ThumbnailSource serves.
var vimeoThumbnailSizes = map[string]string{
	"thumb":  "medium",
	"small":  "small",
	"medium": "medium",
	"large":  "large",
}

// ThumbnailOptions configures the rendered <img> tag.
type ThumbnailOptions struct {
	Alt          string
	Class        string
	Width        int
	Height       int
	FailSilently bool
}

// YouTubeThumbnailSize maps a size key to its image name.
func YouTubeThumbnailSize(size string) (string, bool) {
	name, ok := youTubeThumbnailSizes[size]
	return name, ok
}

// VimeoThumbnailSize maps a size key to the size requested from the source.
func VimeoThumbnailSize(size string) (string, bool) {
	name, ok := vimeoThumbnailSizes[size]
	return name, ok
}

// ThumbnailURL resolves the image URL for rawURL at size. Only YouTube and
// Vimeo have thumbnails; Vimeo requires a configured ThumbnailSource.
func (r *Renderer) ThumbnailURL(ctx context.Context, rawURL, size string) (VideoRef, string, error) {
	if size == "" {
		size = DefaultThumbnailSize
	}

	ref, err := Resolve(rawURL)
	if err != nil {
		return ref, "", err
	}

	switch ref.Provider {
	case YouTube:
		name, ok := YouTubeThumbnailSize(size)
		if !ok {
			return ref, "", fmt.Errorf("%w: %q", ErrUnsupportedThumbnailSize, size)
		}
		return ref, youTubeImageBase + ref.ID + "/" + name + ".jpg", nil
	case Vimeo:
		name, ok := VimeoThumbnailSize(size)
		if !ok {
			return ref, "", fmt.Errorf("%w: %q", ErrUnsupportedThumbnailSize, size)
		}
		if r.thumbnails == nil {
			return ref, "", ErrThumbnailSourceUnavailable
		}
		src, err := r.thumbnails.Thumbnail(ctx, Vimeo, ref.ID, name)
		if err != nil {
			return ref, "", fmt.Errorf("vimeo thumbnail %s: %w", ref.ID, err)
		}
		return ref, src, nil
	default:
		return ref, "", fmt.Errorf("%w: %s has no thumbnails", ErrUnrecognizedProvider, ref.Provider)
	}
}

// Thumbnail renders the thumbnail image for rawURL. Unknown videos render the
// not-found fragment and unsupported sizes render "". Errors come only from the
// thumbnail source.
func (r *Renderer) Thumbnail(ctx context.Context, rawURL, size string, opts ThumbnailOptions) (string, error) {
	_, src, err := r.ThumbnailURL(ctx, rawURL, size)
	switch {
	case err == nil:
		return r.Image(src, opts), nil
	case errors.Is(err, ErrUnsupportedThumbnailSize):
		return "", nil
	case errors.Is(err, ErrUnrecognizedProvider), errors.Is(err, ErrIDExtractionFailed):
		return r.NotFound(opts.FailSilently), nil
	default:
		return "", err
	}
}

// YouTubeThumbnail renders a YouTube thumbnail; non-YouTube URLs render the
// not-found fragment.
func (r *Renderer) YouTubeThumbnail(rawURL, size string, opts ThumbnailOptions) string {
	if Classify(rawURL) != YouTube {
		return r.NotFound(opts.FailSilently)
	}
	// YouTube thumbnails never consult the source.
	out, _ := r.Thumbnail(context.Background(), rawURL, size, opts)
	return out
}

// VimeoThumbnail renders a Vimeo thumbnail using the configured source;
// non-Vimeo URLs render the not-found fragment.
func (r *Renderer) VimeoThumbnail(ctx context.Context, rawURL, size string, opts ThumbnailOptions) (string, error) {
	if Classify(rawURL) != Vimeo {
		return r.NotFound(opts.FailSilently), nil
	}
	return r.Thumbnail(ctx, rawURL, size, opts)
}

// Image renders the <img> tag for a resolved thumbnail URL.
func (r *Renderer) Image(src string, opts ThumbnailOptions) string {
	attrs := Attrs{}.Add("src", src).Add("alt", opts.Alt).AddIfSet("class", opts.Class)
	if opts.Width > 0 {
		attrs = attrs.AddInt("width", opts.Width)
	}
	if opts.Height > 0 {
		attrs = attrs.AddInt("height", opts.Height)
	}
	return r.markup.VoidElement("img", attrs)
}

package embed

import (
	"context"
	"errors"
	"testing"
)

type stubThumbnailSource struct {
	urls  map[string]string
	err   error
	calls int
	size  string
}

func (s *stubThumbnailSource) Thumbnail(_ context.Context, provider Provider, videoID, size string) (string, error) {
	s.calls++
	s.size = size
	if s.err != nil {
		return "", s.err
	}
	if provider != Vimeo {
		return "", errors.New("unexpected provider")
	}
	return s.urls[videoID], nil
}

func TestYouTubeThumbnail(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	const u = "https://www.youtube.com/watch?v=heNGFmEQVq0"

	cases := map[string]string{
		"":       `<img src="//i.ytimg.com/vi/heNGFmEQVq0/default.jpg" alt=""/>`,
		"thumb":  `<img src="//i.ytimg.com/vi/heNGFmEQVq0/default.jpg" alt=""/>`,
		"large":  `<img src="//i.ytimg.com/vi/heNGFmEQVq0/0.jpg" alt=""/>`,
		"thumb2": `<img src="//i.ytimg.com/vi/heNGFmEQVq0/2.jpg" alt=""/>`,
		"wide":   `<img src="//i.ytimg.com/vi/heNGFmEQVq0/mqdefault.jpg" alt=""/>`,
		"maxres": `<img src="//i.ytimg.com/vi/heNGFmEQVq0/maxresdefault.jpg" alt=""/>`,
		"small":  "",
	}
	for size, want := range cases {
		if got := r.YouTubeThumbnail(u, size, ThumbnailOptions{}); got != want {
			t.Errorf("YouTubeThumbnail(size=%q) = %q, want %q", size, got, want)
		}
	}
}

func TestYouTubeThumbnailAttributes(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	got := r.YouTubeThumbnail("https://youtu.be/heNGFmEQVq0", "thumb", ThumbnailOptions{
		Alt:    `Rick "Roll"`,
		Class:  "thumb",
		Width:  120,
		Height: 90,
	})
	want := `<img src="//i.ytimg.com/vi/heNGFmEQVq0/default.jpg" alt="Rick &#34;Roll&#34;" class="thumb" width="120" height="90"/>`
	if got != want {
		t.Fatalf("unexpected markup\n got: %s\nwant: %s", got, want)
	}
}

func TestYouTubeThumbnailRejectsOtherProviders(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if got := r.YouTubeThumbnail("https://vimeo.com/62085792", "thumb", ThumbnailOptions{}); got != notFoundFragment {
		t.Fatalf("expected not-found fragment, got %q", got)
	}
	if got := r.YouTubeThumbnail("https://vimeo.com/62085792", "thumb", ThumbnailOptions{FailSilently: true}); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestVimeoThumbnail(t *testing.T) {
	src := &stubThumbnailSource{urls: map[string]string{"62085792": "https://i.vimeocdn.com/video/1_200x150.jpg"}}
	r := NewRenderer(RendererConfig{Thumbnails: src})

	got, err := r.VimeoThumbnail(context.Background(), "https://vimeo.com/62085792", "", ThumbnailOptions{Alt: "cover"})
	if err != nil {
		t.Fatalf("VimeoThumbnail() error = %v", err)
	}
	if got != `<img src="https://i.vimeocdn.com/video/1_200x150.jpg" alt="cover"/>` {
		t.Fatalf("unexpected markup: %s", got)
	}
	if src.size != "medium" {
		t.Fatalf("expected default size to map to medium, got %q", src.size)
	}

	got, err = r.VimeoThumbnail(context.Background(), "https://vimeo.com/62085792", "wide", ThumbnailOptions{})
	if err != nil || got != "" {
		t.Fatalf("unsupported size should render empty, got %q, %v", got, err)
	}
	if src.calls != 1 {
		t.Fatalf("unsupported size must not reach the source, calls=%d", src.calls)
	}
}

func TestVimeoThumbnailSourceErrors(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if _, err := r.VimeoThumbnail(context.Background(), "https://vimeo.com/1", "large", ThumbnailOptions{}); !errors.Is(err, ErrThumbnailSourceUnavailable) {
		t.Fatalf("expected ErrThumbnailSourceUnavailable, got %v", err)
	}

	boom := errors.New("boom")
	r = NewRenderer(RendererConfig{Thumbnails: &stubThumbnailSource{err: boom}})
	if _, err := r.VimeoThumbnail(context.Background(), "https://vimeo.com/1", "large", ThumbnailOptions{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestThumbnailURL(t *testing.T) {
	r := NewRenderer(RendererConfig{})

	ref, src, err := r.ThumbnailURL(context.Background(), "https://youtu.be/heNGFmEQVq0", "large")
	if err != nil {
		t.Fatalf("ThumbnailURL() error = %v", err)
	}
	if ref.Provider != YouTube || src != "//i.ytimg.com/vi/heNGFmEQVq0/0.jpg" {
		t.Fatalf("unexpected result: %+v %s", ref, src)
	}

	if _, _, err := r.ThumbnailURL(context.Background(), "https://youtu.be/heNGFmEQVq0", "huge"); !errors.Is(err, ErrUnsupportedThumbnailSize) {
		t.Fatalf("expected ErrUnsupportedThumbnailSize, got %v", err)
	}
	if _, _, err := r.ThumbnailURL(context.Background(), "http://www.dailymotion.com/video/x1b6849", "thumb"); !errors.Is(err, ErrUnrecognizedProvider) {
		t.Fatalf("expected ErrUnrecognizedProvider, got %v", err)
	}
}

func TestThumbnailUnknownVideo(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	got, err := r.Thumbnail(context.Background(), "http://www.dailymotion.com/video/x1b6849", "thumb", ThumbnailOptions{})
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	if got != notFoundFragment {
		t.Fatalf("expected not-found fragment, got %q", got)
	}
}

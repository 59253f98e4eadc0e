package embed

import (
	"errors"
	"net/url"
	"testing"
)

func TestParseOptions(t *testing.T) {
	values := url.Values{
		"url":      {"https://youtu.be/heNGFmEQVq0"},
		"width":    {"100", "640"},
		"autoplay": {"true"},
		"rel":      {"1"},
		"color":    {"#ff0000"},
		"class":    {"player"},
	}

	opts, err := ParseOptions(values, "url")
	if err != nil {
		t.Fatalf("ParseOptions() error = %v", err)
	}
	if opts.Width == nil || *opts.Width != 640 {
		t.Fatalf("expected last width to win, got %v", opts.Width)
	}
	if opts.Autoplay == nil || !*opts.Autoplay {
		t.Fatalf("expected autoplay, got %v", opts.Autoplay)
	}
	if opts.Related == nil || !*opts.Related {
		t.Fatalf("expected rel alias to set Related")
	}
	if opts.Color == nil || *opts.Color != "ff0000" {
		t.Fatalf("expected color without #, got %v", opts.Color)
	}
	if opts.Class != "player" {
		t.Fatalf("unexpected class %q", opts.Class)
	}
	if opts.Height != nil || opts.Loop != nil {
		t.Fatal("unset options must stay nil")
	}
}

func TestParseOptionsRejectsInvalidValues(t *testing.T) {
	cases := []url.Values{
		{"width": {"wide"}},
		{"height": {"-1"}},
		{"autoplay": {"maybe"}},
		{"unknown": {"1"}},
	}
	for _, values := range cases {
		if _, err := ParseOptions(values); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("ParseOptions(%v) error = %v, want ErrInvalidOption", values, err)
		}
	}
}

func TestOptionsSetFailSilently(t *testing.T) {
	var opts Options
	if err := opts.Set("failSilently", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !opts.FailSilently {
		t.Fatal("expected FailSilently to be set")
	}
}

func TestOptionsWithDoesNotMutateReceiver(t *testing.T) {
	base := Options{}.WithWidth(100)
	derived := base.WithWidth(200).WithClass("x")
	if *base.Width != 100 || *derived.Width != 200 {
		t.Fatalf("expected independent copies, got %d and %d", *base.Width, *derived.Width)
	}
	if base.Class != "" {
		t.Fatalf("base class changed to %q", base.Class)
	}
}

func TestConfigWithKeepsDefaultsForUnsetFields(t *testing.T) {
	cfg := DefaultYouTubeConfig().With(Options{}.WithWidth(320))
	if cfg.Width != 320 || cfg.Height != 369 || !cfg.HD || !cfg.ShowInfo {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	off := DefaultYouTubeConfig().With(Options{}.WithHD(false))
	if off.HD {
		t.Fatal("explicit false must override a true default")
	}
}

func TestVimeoColorIsEscaped(t *testing.T) {
	src := DefaultVimeoConfig().With(Options{}.WithColor("a&b")).Src("1")
	if src != "//player.vimeo.com/video/1?title=1&byline=1&portrait=0&color=a%26b&autoplay=1&loop=1" {
		t.Fatalf("unexpected src: %s", src)
	}
}

package embed

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Options holds caller overrides layered over a provider's defaults. Unset
// fields keep the provider default. Options is a value type; the With methods
// return modified copies, so a base Options can be shared between goroutines.
type Options struct {
	// FailSilently renders "" instead of the error fragment when no video is
	// found. It never reaches the emitted markup.
	FailSilently bool

	Width           *int
	Height          *int
	Frameborder     *int
	AllowFullscreen *bool
	Autoplay        *bool
	Loop            *bool

	// YouTube
	HD          *bool
	Related     *bool // also Dailymotion
	ShowInfo    *bool
	Mute        *bool
	EnableJSAPI *bool
	Allow       string
	Class       string
	ID          string
	Origin      string

	// Vimeo
	ShowTitle    *bool
	ShowByline   *bool
	ShowPortrait *bool
	Color        *string

	// Wistia
	ControlsVisibleOnLoad *bool
	EndVideoBehavior      string
}

func ptr[T any](v T) *T { return &v }

func (o Options) WithFailSilently(v bool) Options { o.FailSilently = v; return o }
func (o Options) WithWidth(v int) Options { o.Width = ptr(v); return o }
func (o Options) WithHeight(v int) Options { o.Height = ptr(v); return o }
func (o Options) WithFrameborder(v int) Options { o.Frameborder = ptr(v); return o }
func (o Options) WithAllowFullscreen(v bool) Options { o.AllowFullscreen = ptr(v); return o }
func (o Options) WithAutoplay(v bool) Options { o.Autoplay = ptr(v); return o }
func (o Options) WithLoop(v bool) Options { o.Loop = ptr(v); return o }
func (o Options) WithHD(v bool) Options { o.HD = ptr(v); return o }
func (o Options) WithRelated(v bool) Options { o.Related = ptr(v); return o }
func (o Options) WithShowInfo(v bool) Options { o.ShowInfo = ptr(v); return o }
func (o Options) WithMute(v bool) Options { o.Mute = ptr(v); return o }
func (o Options) WithEnableJSAPI(v bool) Options { o.EnableJSAPI = ptr(v); return o }
func (o Options) WithAllow(v string) Options { o.Allow = v; return o }
func (o Options) WithClass(v string) Options { o.Class = v; return o }
func (o Options) WithID(v string) Options { o.ID = v; return o }
func (o Options) WithOrigin(v string) Options { o.Origin = v; return o }
func (o Options) WithShowTitle(v bool) Options { o.ShowTitle = ptr(v); return o }
func (o Options) WithShowByline(v bool) Options { o.ShowByline = ptr(v); return o }
func (o Options) WithShowPortrait(v bool) Options { o.ShowPortrait = ptr(v); return o }
func (o Options) WithColor(v string) Options { o.Color = ptr(v); return o }

func (o Options) WithControlsVisibleOnLoad(v bool) Options {
	o.ControlsVisibleOnLoad = ptr(v)
	return o
}

func (o Options) WithEndVideoBehavior(v string) Options {
	o.EndVideoBehavior = v
	return o
}

// Set assigns an option by its wire name, as used in query strings and on the
// command line. Boolean values accept anything strconv.ParseBool does.
func (o *Options) Set(name, value string) error {
	value = strings.TrimSpace(value)
	switch name {
	case "failSilently":
		return setBool(&o.FailSilently, name, value)
	case "width":
		return setIntPtr(&o.Width, name, value)
	case "height":
		return setIntPtr(&o.Height, name, value)
	case "frameborder":
		return setIntPtr(&o.Frameborder, name, value)
	case "allowfullscreen":
		return setBoolPtr(&o.AllowFullscreen, name, value)
	case "autoplay", "autoPlay":
		return setBoolPtr(&o.Autoplay, name, value)
	case "loop":
		return setBoolPtr(&o.Loop, name, value)
	case "hd":
		return setBoolPtr(&o.HD, name, value)
	case "rel", "related":
		return setBoolPtr(&o.Related, name, value)
	case "showinfo":
		return setBoolPtr(&o.ShowInfo, name, value)
	case "mute":
		return setBoolPtr(&o.Mute, name, value)
	case "enablejsapi":
		return setBoolPtr(&o.EnableJSAPI, name, value)
	case "title", "show_title":
		return setBoolPtr(&o.ShowTitle, name, value)
	case "byline", "show_byline":
		return setBoolPtr(&o.ShowByline, name, value)
	case "portrait", "show_portrait":
		return setBoolPtr(&o.ShowPortrait, name, value)
	case "controlsVisibleOnLoad":
		return setBoolPtr(&o.ControlsVisibleOnLoad, name, value)
	case "color":
		o.Color = ptr(strings.TrimPrefix(value, "#"))
	case "allow":
		o.Allow = value
	case "class":
		o.Class = value
	case "id":
		o.ID = value
	case "origin":
		o.Origin = value
	case "endVideoBehavior":
		o.EndVideoBehavior = value
	default:
		return fmt.Errorf("%w: unknown option %q", ErrInvalidOption, name)
	}
	return nil
}

// ParseOptions builds Options from query-string style values. Keys listed in
// skip are ignored, which lets callers mix options with their own parameters.
func ParseOptions(values url.Values, skip ...string) (Options, error) {
	ignored := make(map[string]struct{}, len(skip))
	for _, key := range skip {
		ignored[key] = struct{}{}
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		if _, ok := ignored[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var opts Options
	for _, key := range keys {
		vs := values[key]
		if len(vs) == 0 {
			continue
		}
		if err := opts.Set(key, vs[len(vs)-1]); err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}

func setBool(dst *bool, name, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidOption, name, value)
	}
	*dst = b
	return nil
}

func setBoolPtr(dst **bool, name, value string) error {
	var b bool
	if err := setBool(&b, name, value); err != nil {
		return err
	}
	*dst = &b
	return nil
}

func setIntPtr(dst **int, name, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("%w: %s=%q is not a non-negative integer", ErrInvalidOption, name, value)
	}
	*dst = &n
	return nil
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func overrideString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

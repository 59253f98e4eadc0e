package embed

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	youTubePlayerBase     = "//www.youtube.com/embed/"
	youTubeImageBase      = "//i.ytimg.com/vi/"
	youTubeIframeAPI      = "https://www.youtube.com/iframe_api"
	vimeoPlayerBase       = "//player.vimeo.com/video/"
	dailymotionPlayerBase = "//www.dailymotion.com/embed/video/"
	wistiaPlayerBase      = "//fast.wistia.net/embed/iframe/"
	bbcPlayerBase         = "//www.bbc.co.uk/programmes/"
)

// YouTubeConfig is the fully resolved YouTube player configuration.
type YouTubeConfig struct {
	Width           int
	Height          int
	Frameborder     int
	AllowFullscreen bool
	HD              bool
	Related         bool
	Autoplay        bool
	ShowInfo        bool
	Mute            bool
	EnableJSAPI     bool
	Loop            bool
	Allow           string
	Class           string
	ID              string
	Origin          string
}

// DefaultYouTubeConfig returns the YouTube defaults: 624x369, HD on, info
// shown, everything else off.
func DefaultYouTubeConfig() YouTubeConfig {
	return YouTubeConfig{
		Width:           624,
		Height:          369,
		AllowFullscreen: true,
		HD:              true,
		ShowInfo:        true,
	}
}

// With layers o over c.
func (c YouTubeConfig) With(o Options) YouTubeConfig {
	override(&c.Width, o.Width)
	override(&c.Height, o.Height)
	override(&c.Frameborder, o.Frameborder)
	override(&c.AllowFullscreen, o.AllowFullscreen)
	override(&c.HD, o.HD)
	override(&c.Related, o.Related)
	override(&c.Autoplay, o.Autoplay)
	override(&c.ShowInfo, o.ShowInfo)
	override(&c.Mute, o.Mute)
	override(&c.EnableJSAPI, o.EnableJSAPI)
	override(&c.Loop, o.Loop)
	overrideString(&c.Allow, o.Allow)
	overrideString(&c.Class, o.Class)
	overrideString(&c.ID, o.ID)
	overrideString(&c.Origin, o.Origin)
	return c
}

// Src builds the player URL for id.
func (c YouTubeConfig) Src(id string) string {
	var q query
	q.bool("hd", c.HD)
	q.bool("rel", c.Related)
	q.bool("autoplay", c.Autoplay)
	q.bool("showinfo", c.ShowInfo)
	q.bool("mute", c.Mute)
	q.bool("enablejsapi", c.EnableJSAPI)
	if c.Loop {
		q.bool("loop", true)
		q.raw("playlist", id)
	}
	if c.EnableJSAPI && c.Origin != "" {
		q.escaped("origin", c.Origin)
	}
	return youTubePlayerBase + id + q.String()
}

// VimeoConfig is the fully resolved Vimeo player configuration.
type VimeoConfig struct {
	Width           int
	Height          int
	Frameborder     int
	AllowFullscreen bool
	ShowTitle       bool
	ShowByline      bool
	ShowPortrait    bool
	Color           string
	Autoplay        bool
	Loop            bool
}

// DefaultVimeoConfig returns the Vimeo defaults: 400x225, title and byline
// shown, autoplaying and looping with the 00adef accent.
func DefaultVimeoConfig() VimeoConfig {
	return VimeoConfig{
		Width:           400,
		Height:          225,
		AllowFullscreen: true,
		ShowTitle:       true,
		ShowByline:      true,
		Color:           "00adef",
		Autoplay:        true,
		Loop:            true,
	}
}

// With layers o over c.
func (c VimeoConfig) With(o Options) VimeoConfig {
	override(&c.Width, o.Width)
	override(&c.Height, o.Height)
	override(&c.Frameborder, o.Frameborder)
	override(&c.AllowFullscreen, o.AllowFullscreen)
	override(&c.ShowTitle, o.ShowTitle)
	override(&c.ShowByline, o.ShowByline)
	override(&c.ShowPortrait, o.ShowPortrait)
	override(&c.Color, o.Color)
	override(&c.Autoplay, o.Autoplay)
	override(&c.Loop, o.Loop)
	return c
}

// Src builds the player URL for id. The color is passed through as given.
func (c VimeoConfig) Src(id string) string {
	var q query
	q.bool("title", c.ShowTitle)
	q.bool("byline", c.ShowByline)
	q.bool("portrait", c.ShowPortrait)
	q.escaped("color", c.Color)
	q.bool("autoplay", c.Autoplay)
	q.bool("loop", c.Loop)
	return vimeoPlayerBase + id + q.String()
}

// DailymotionConfig is the fully resolved Dailymotion player configuration.
type DailymotionConfig struct {
	Width           int
	Height          int
	Frameborder     int
	AllowFullscreen bool
	Related         bool
}

// DefaultDailymotionConfig returns the Dailymotion defaults: 480x270 without
// related videos.
func DefaultDailymotionConfig() DailymotionConfig {
	return DailymotionConfig{Width: 480, Height: 270, AllowFullscreen: true}
}

// With layers o over c.
func (c DailymotionConfig) With(o Options) DailymotionConfig {
	override(&c.Width, o.Width)
	override(&c.Height, o.Height)
	override(&c.Frameborder, o.Frameborder)
	override(&c.AllowFullscreen, o.AllowFullscreen)
	override(&c.Related, o.Related)
	return c
}

// Src builds the player URL for id.
func (c DailymotionConfig) Src(id string) string {
	var q query
	q.bool("related", c.Related)
	return dailymotionPlayerBase + id + q.String()
}

// WistiaConfig is the fully resolved Wistia player configuration. AutoPlay is
// nil unless the caller asked for it, in which case it is emitted either way.
type WistiaConfig struct {
	Width                 int
	Height                int
	Frameborder           int
	AllowFullscreen       bool
	AutoPlay              *bool
	ControlsVisibleOnLoad bool
	EndVideoBehavior      string
}

// DefaultWistiaConfig returns the Wistia defaults: 480x270 with the player's
// own playback settings.
func DefaultWistiaConfig() WistiaConfig {
	return WistiaConfig{Width: 480, Height: 270, AllowFullscreen: true, ControlsVisibleOnLoad: true}
}

// With layers o over c. Loop maps onto endVideoBehavior=loop unless an
// explicit end behaviour was given.
func (c WistiaConfig) With(o Options) WistiaConfig {
	override(&c.Width, o.Width)
	override(&c.Height, o.Height)
	override(&c.Frameborder, o.Frameborder)
	override(&c.AllowFullscreen, o.AllowFullscreen)
	override(&c.ControlsVisibleOnLoad, o.ControlsVisibleOnLoad)
	if o.Autoplay != nil {
		c.AutoPlay = ptr(*o.Autoplay)
	}
	if o.Loop != nil && *o.Loop {
		c.EndVideoBehavior = "loop"
	}
	overrideString(&c.EndVideoBehavior, o.EndVideoBehavior)
	return c
}

// Src builds the player URL for id. The query string is only present when a
// playback option deviates from the player defaults.
func (c WistiaConfig) Src(id string) string {
	var q query
	if c.AutoPlay != nil {
		q.bool("autoPlay", *c.AutoPlay)
	}
	if !c.ControlsVisibleOnLoad {
		q.bool("controlsVisibleOnLoad", false)
	}
	if c.EndVideoBehavior != "" {
		q.escaped("endVideoBehavior", c.EndVideoBehavior)
	}
	return wistiaPlayerBase + id + q.String()
}

// BBCConfig is the fully resolved BBC player configuration.
type BBCConfig struct {
	Width           int
	Height          int
	Frameborder     int
	AllowFullscreen bool
}

// DefaultBBCConfig returns the BBC defaults: 500x400.
func DefaultBBCConfig() BBCConfig {
	return BBCConfig{Width: 500, Height: 400, AllowFullscreen: true}
}

// With layers o over c.
func (c BBCConfig) With(o Options) BBCConfig {
	override(&c.Width, o.Width)
	override(&c.Height, o.Height)
	override(&c.Frameborder, o.Frameborder)
	override(&c.AllowFullscreen, o.AllowFullscreen)
	return c
}

// Src builds the player URL for id.
func (c BBCConfig) Src(id string) string {
	return bbcPlayerBase + id + "/player"
}

// query accumulates an ordered query string.
type query struct {
	b strings.Builder
}

func (q *query) raw(key, value string) {
	if q.b.Len() == 0 {
		q.b.WriteByte('?')
	} else {
		q.b.WriteByte('&')
	}
	q.b.WriteString(key)
	q.b.WriteByte('=')
	q.b.WriteString(value)
}

func (q *query) bool(key string, v bool) {
	q.raw(key, boolInt(v))
}

func (q *query) escaped(key, value string) {
	q.raw(key, url.QueryEscape(value))
}

func (q *query) String() string {
	return q.b.String()
}

func boolInt(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

package embed

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	reYouTube = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.)?(?:youtu\.be/|youtube\.com/(?:watch\?(?:[^"'>]*?&)?vi?=|(?:embed|v|vi|user)/))([^?&"'>]+)`)
	reWistia  = regexp.MustCompile(`(?i)^/medias/([0-9a-z]+)`)
	reBBC     = regexp.MustCompile(`(?i)^/programmes/([0-9a-z]+)`)
)

// Resolve classifies rawURL and extracts its video id.
func Resolve(rawURL string) (VideoRef, error) {
	provider := Classify(rawURL)
	if provider == Unknown {
		return VideoRef{}, ErrUnrecognizedProvider
	}
	ref := VideoRef{Provider: provider, ID: ExtractID(rawURL, provider)}
	if ref.ID == "" {
		return ref, ErrIDExtractionFailed
	}
	return ref, nil
}

// ExtractID returns the provider-specific video id carried by rawURL, or ""
// when none can be found. The provider is taken as given, so callers that
// already know the provider may skip classification.
func ExtractID(rawURL string, provider Provider) string {
	rawURL = strings.TrimSpace(rawURL)
	switch provider {
	case YouTube:
		return youTubeID(rawURL)
	case Vimeo:
		return strings.TrimPrefix(urlPath(rawURL), "/")
	case Dailymotion:
		return dailymotionID(rawURL)
	case Wistia:
		return firstSubmatch(reWistia, urlPath(rawURL))
	case BBC:
		return firstSubmatch(reBBC, urlPath(rawURL))
	default:
		return ""
	}
}

// youTubeID falls back to the raw "v" query parameter and finally to the
// whole input when the pattern does not match. The fallbacks are what the
// earliest extractor accepted and are kept for compatibility.
func youTubeID(rawURL string) string {
	if id := firstSubmatch(reYouTube, rawURL); id != "" {
		return id
	}
	if v, ok := rawQueryParams(rawURL)["v"]; ok {
		return v
	}
	return rawURL
}

func dailymotionID(rawURL string) string {
	p := strings.TrimRight(urlPath(rawURL), "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	for _, token := range strings.Split(p, "_") {
		if token != "" {
			return token
		}
	}
	return ""
}

func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.EscapedPath()
}

// rawQueryParams splits the query on "&" and "=" without unescaping values.
// A query whose first "=" is missing or leading yields no parameters.
func rawQueryParams(rawURL string) map[string]string {
	params := make(map[string]string)
	u, err := url.Parse(rawURL)
	if err != nil {
		return params
	}
	query := u.RawQuery
	if strings.Index(query, "=") <= 0 {
		return params
	}
	for _, part := range strings.Split(query, "&") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		params[key] = value
	}
	return params
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

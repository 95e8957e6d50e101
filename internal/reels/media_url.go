package reels

import (
	"net/url"
	"path"
	"strings"
)

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".webm": {},
	".mov":  {},
	".m4v":  {},
	".ogg":  {},
	".ogv":  {},
	".mkv":  {},
	".m3u8": {},
}

// NormalizeVideoURL resolves raw against the API origin and appends ".mp4"
// to storage paths under uploads/ or media/ that lack a video extension.
func NormalizeVideoURL(baseURL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !u.IsAbs() {
		if base, err := url.Parse(baseURL); err == nil && base.Host != "" {
			origin := &url.URL{Scheme: base.Scheme, Host: base.Host}
			if !strings.HasPrefix(u.Path, "/") {
				u.Path = "/" + u.Path
			}
			u = origin.ResolveReference(u)
		}
	}

	if isStoragePath(u.Path) {
		if _, ok := videoExtensions[strings.ToLower(path.Ext(u.Path))]; !ok {
			u.Path += ".mp4"
			u.RawPath = ""
		}
	}
	return u.String()
}

func isStoragePath(p string) bool {
	p = strings.TrimPrefix(p, "/")
	return strings.HasPrefix(p, "uploads/") || strings.HasPrefix(p, "media/") ||
		strings.Contains(p, "/uploads/") || strings.Contains(p, "/media/")
}

package validation

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/omar99elnemr/summarizeit/config"
	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/omar99elnemr/summarizeit/models"
	"mvdan.cc/xurls/v2"
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

type Validator struct {
	config *config.Config
	urlRe  *regexp.Regexp
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
		urlRe:  xurls.Strict(),
	}
}

// ExtractURL pulls the first URL out of free-form input. Users paste
// whole sentences around links; the raw input is also accepted as-is.
func (v *Validator) ExtractURL(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if _, err := url.ParseRequestURI(input); err == nil {
		return input
	}
	return v.urlRe.FindString(input)
}

// ValidateURL performs URL validation
func (v *Validator) ValidateURL(urlStr string) error {
	const op = "Validator.ValidateURL"

	if urlStr == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	parsedURL, err := url.ParseRequestURI(urlStr)
	if err != nil {
		return errors.InvalidInput(op, err, "Invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.InvalidInput(op, nil, "URL must use HTTP or HTTPS")
	}

	host := parsedURL.Hostname()
	if host == "" {
		return errors.InvalidInput(op, nil, "URL must have a host")
	}

	if isBlockedHost(host) {
		return errors.InvalidInput(op, nil, "URL host is not allowed")
	}

	if kind := Classify(urlStr); kind == models.KindVideo {
		if _, err := VideoID(urlStr); err != nil {
			return err
		}
	}

	return nil
}

// Classify reports whether a URL points at a known video host or a generic page.
func Classify(urlStr string) models.DocumentKind {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return models.KindPage
	}
	if isYouTubeDomain(parsedURL.Hostname()) {
		return models.KindVideo
	}
	return models.KindPage
}

// VideoID extracts the 11-character video ID from the supported URL forms:
// watch?v=, shorts/, embed/, live/ and youtu.be short links.
func VideoID(urlStr string) (string, error) {
	const op = "validation.VideoID"

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", errors.InvalidInput(op, err, "Invalid URL format")
	}

	host := strings.ToLower(parsedURL.Hostname())
	var id string

	switch {
	case host == "youtu.be":
		id = strings.Trim(parsedURL.Path, "/")
	case isYouTubeDomain(host):
		path := strings.Trim(parsedURL.Path, "/")
		switch {
		case path == "watch":
			id = parsedURL.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"):
			id = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "embed/"):
			id = strings.TrimPrefix(path, "embed/")
		case strings.HasPrefix(path, "live/"):
			id = strings.TrimPrefix(path, "live/")
		}
	}

	if i := strings.IndexAny(id, "/?&"); i >= 0 {
		id = id[:i]
	}

	if !videoIDRe.MatchString(id) {
		return "", errors.InvalidInput(op, nil, "Video URL must contain a valid video ID")
	}

	return id, nil
}

func isYouTubeDomain(hostname string) bool {
	hostname = strings.ToLower(hostname)
	switch hostname {
	case "youtube.com", "www.youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be":
		return true
	}
	return false
}

// isBlockedHost rejects loopback, private, and link-local destinations so the
// fetcher cannot be pointed at internal services.
func isBlockedHost(host string) bool {
	hostname := strings.ToLower(host)
	if hostname == "localhost" || strings.HasSuffix(hostname, ".local") {
		return true
	}

	ip := net.ParseIP(hostname)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

package service

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"videocatalog/internal/config"
)

var imageExtPattern = regexp.MustCompile(`(?i)\.(jpe?g|png|webp|gif)$`)

var localImagePrefixes = []string{"./images/", "/images/"}

// NormalizeThumbnail maps an external image reference to a path under
// imageRoot. Absolute URLs laid out as .../<year>/<month>/<file> become
// <root>/<year>_<month>_<file>; bare image filenames become <root>/<file>.
// References that are already local are returned as is. The second result is
// false when nothing usable could be derived.
func NormalizeThumbnail(link, imageRoot string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}
	root := strings.TrimRight(strings.TrimSpace(imageRoot), "/")
	if root == "" {
		root = strings.TrimRight(config.DefaultImageRoot, "/")
	}
	if isLocalImage(link, root) {
		return link, true
	}

	if u, err := url.Parse(link); err == nil && u.Scheme != "" {
		segments := strings.Split(u.EscapedPath(), "/")
		filename := popSegment(&segments)
		month := popSegment(&segments)
		year := popSegment(&segments)
		if year == "" || !imageExtPattern.MatchString(filename) {
			return "", false
		}
		return root + "/" + year + "_" + normalizeMonth(month) + "_" + filename, true
	}

	if imageExtPattern.MatchString(link) {
		return root + "/" + link, true
	}
	return "", false
}

// thumbnailURL resolves a card's image link, substituting the configured
// default when normalization yields nothing.
func thumbnailURL(cfg config.CatalogConfig, link *string) string {
	if link != nil {
		if path, ok := NormalizeThumbnail(*link, cfg.ImageRoot); ok {
			return path
		}
	}
	if cfg.DefaultThumbnail != "" {
		return cfg.DefaultThumbnail
	}
	return config.DefaultThumbnailPath
}

func isLocalImage(link, root string) bool {
	for _, prefix := range localImagePrefixes {
		if strings.HasPrefix(link, prefix) {
			return true
		}
	}
	return strings.HasPrefix(link, root+"/")
}

func popSegment(segments *[]string) string {
	s := *segments
	if len(s) == 0 {
		return ""
	}
	last := s[len(s)-1]
	*segments = s[:len(s)-1]
	return last
}

// normalizeMonth strips leading zeros ("08" -> "8"); empty or non-numeric
// months become "1".
func normalizeMonth(raw string) string {
	n, ok := leadingInt(raw)
	if !ok {
		return "1"
	}
	return strconv.FormatInt(n, 10)
}

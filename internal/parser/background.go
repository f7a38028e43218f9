package parser

import "strings"

var videoExtensions = []string{
	".avi", ".ogg", ".ogv", ".mpg", ".mpeg", ".mov", ".mp4", ".wmv", ".webm",
}

// ClassifyBackground derives the background kind from a reference.
// Extensions win over color names, color names win over the image fallback.
func ClassifyBackground(ref string) BackgroundKind {
	if ref == "" {
		return BackgroundNone
	}

	lower := strings.ToLower(ref)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return BackgroundVideo
		}
	}
	if strings.HasSuffix(lower, ".svg") {
		return BackgroundSVG
	}
	if _, ok := ParseColor(lower); ok {
		return BackgroundColor
	}
	return BackgroundImage
}

package base64

import (
	"encoding/base64"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

// GetContentType returns the media type of a data URL, or "" when it is malformed.
func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// IsImage reports whether file is a well-formed base64 data URL with an image media type.
func IsImage(file string) bool {
	if !strings.HasPrefix(file, dataPrefix) {
		return false
	}

	if !strings.HasPrefix(GetContentType(file), "image/") {
		return false
	}

	payload := file[strings.Index(file, base64Marker)+len(base64Marker):]

	_, err := base64.StdEncoding.DecodeString(payload)

	return err == nil
}

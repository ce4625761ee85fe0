package leads

import "strings"

// UnknownOrigin tags leads whose request carried no usable path.
const UnknownOrigin = "unknown"

// ResolveOrigin returns the last segment of the request path, e.g.
// "/webhooks/instagram/" -> "instagram".
func ResolveOrigin(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return UnknownOrigin
	}
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return UnknownOrigin
}

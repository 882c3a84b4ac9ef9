package course

import "strings"

const youtubeEmbed = "https://www.youtube.com/embed/"

// EmbedURL pasa los enlaces de YouTube (youtu.be/<id> o ...?v=<id>) a su forma embebible.
// Lo que ya es embed o no se reconoce se devuelve tal cual.
func EmbedURL(raw string) string {
	if raw == "" || strings.Contains(raw, "embed") {
		return raw
	}

	var id string
	switch {
	case strings.Contains(raw, "youtu.be/"):
		id = raw[strings.LastIndex(raw, "/")+1:]
		id, _, _ = strings.Cut(id, "?")
	case strings.Contains(raw, "v="):
		_, id, _ = strings.Cut(raw, "v=")
		id, _, _ = strings.Cut(id, "&")
		id, _, _ = strings.Cut(id, "?")
	default:
		return raw
	}
	if id == "" {
		return raw
	}
	return youtubeEmbed + id + "?modestbranding=1&rel=0"
}

package monitor

import "strings"

// ParseTag splits a firmware log line of the form "[Sensors] I2C initialized"
// into its tag and message. Lines without a leading tag return an empty tag.
func ParseTag(text string) (tag, msg string) {
	if !strings.HasPrefix(text, "[") {
		return "", text
	}
	end := strings.IndexByte(text, ']')
	if end < 0 {
		return "", text
	}
	return strings.TrimSpace(text[1:end]), strings.TrimSpace(text[end+1:])
}

// IsFallback reports whether tag marks a sensor reading that failed and was
// replaced by a substitute value, e.g. "FALLBACK - RANDOM VALUE".
func IsFallback(tag string) bool {
	return strings.HasPrefix(strings.ToUpper(tag), "FALLBACK")
}

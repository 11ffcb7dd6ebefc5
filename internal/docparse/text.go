package docparse

import (
	"strings"
	"unicode/utf8"
)

// CleanText normalizes document text while preserving line structure:
// line endings become LF, trailing whitespace is trimmed, and runs of blank
// lines collapse to at most one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			if !blank {
				cleaned = append(cleaned, "")
			}
			blank = true
			continue
		}
		blank = false
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// looksBinary reports whether data is clearly not a text document.
func looksBinary(data []byte) bool {
	if !utf8.Valid(data) {
		return true
	}
	// Null bytes never appear in the text formats we accept.
	for _, b := range data {
		if b == 0x00 {
			return true
		}
	}
	return false
}

// looksHTML reports whether the document should go through the HTML
// extractor.
func looksHTML(data []byte, filename string) bool {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return true
	}
	head := strings.ToLower(string(data[:min(len(data), 512)]))
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html")
}

package domain

import (
	"strings"
	"unicode"
)

const allowedFilenamePunct = "-_()[].,!&'"

// SanitizeFilename strips characters that are unsafe in file names or
// meaningful to yt-dlp output templates.
func SanitizeFilename(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r) || unicode.IsSpace(r) || strings.ContainsRune(allowedFilenamePunct, r) {
			if unicode.IsSpace(r) {
				r = ' '
			}
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

// OutputBaseName returns the file stem for an entry
func OutputBaseName(e MediaEntry) string {
	if name := SanitizeFilename(e.Title); name != "" {
		return name
	}
	if name := SanitizeFilename(e.ID); name != "" {
		return name
	}
	return "download"
}

package span

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// FenceTag returns the code fence language tag for a filename, e.g.
// "go" for main.go or "typescript" for a.ts. Empty when the language
// cannot be detected from the name alone.
func FenceTag(filename string) string {
	if filename == "" {
		return ""
	}

	lang, _ := enry.GetLanguageByExtension(filepath.Base(filename))
	if lang == "" {
		lang, _ = enry.GetLanguageByFilename(filepath.Base(filename))
	}
	if lang == "" {
		return ""
	}

	return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
}

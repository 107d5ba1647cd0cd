package markdown

import (
	"strings"

	"github.com/russross/blackfriday"
)

// ToHTML renders an assistant reply's markdown for the web UI.
func ToHTML(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(string(blackfriday.MarkdownCommon([]byte(text))))
}

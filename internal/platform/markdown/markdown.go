package markdown

import (
	"strings"

	"github.com/russross/blackfriday"
)

const htmlFlags = blackfriday.HTML_USE_XHTML |
	blackfriday.HTML_SKIP_HTML |
	blackfriday.HTML_SKIP_STYLE |
	blackfriday.HTML_SAFELINK

const extensions = blackfriday.EXTENSION_NO_INTRA_EMPHASIS |
	blackfriday.EXTENSION_TABLES |
	blackfriday.EXTENSION_FENCED_CODE |
	blackfriday.EXTENSION_STRIKETHROUGH |
	blackfriday.EXTENSION_SPACE_HEADERS |
	blackfriday.EXTENSION_HARD_LINE_BREAK

// ToHTML renders model-written Markdown (scripts, lesson plans) for printing. Raw HTML in the
// source is dropped.
func ToHTML(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	renderer := blackfriday.HtmlRenderer(htmlFlags, "", "")
	return string(blackfriday.Markdown([]byte(src), renderer, extensions))
}

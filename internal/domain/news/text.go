package news

import (
	"regexp"
	"strings"
)

var (
	scriptBlockPattern   = regexp.MustCompile(`(?is)<script[\s\S]*?>[\s\S]*?</script>`)
	styleBlockPattern    = regexp.MustCompile(`(?is)<style[\s\S]*?>[\s\S]*?</style>`)
	lineBreakPattern     = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockTagPattern      = regexp.MustCompile(`(?i)</?(p|div|section|article|blockquote|li|ul|ol|header|footer|h[1-6])>`)
	anyTagPattern        = regexp.MustCompile(`<[^>]+>`)
	trailingSpacePattern = regexp.MustCompile(`[ \t]+\n`)
	leadingSpacePattern  = regexp.MustCompile(`\n[ \t]+`)
	blankLinesPattern    = regexp.MustCompile(`\n{3,}`)
	spaceRunPattern      = regexp.MustCompile(`[ \t]{2,}`)
	paragraphSplit       = regexp.MustCompile(`\n{2,}`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
	"&lt;", "<",
	"&gt;", ">",
)

// StripHTML turns feed markup into plain text. Block elements and line breaks
// become newlines so paragraphs survive.
func StripHTML(input string) string {
	text := scriptBlockPattern.ReplaceAllString(input, "")
	text = styleBlockPattern.ReplaceAllString(text, "")
	text = lineBreakPattern.ReplaceAllString(text, "\n")
	text = blockTagPattern.ReplaceAllString(text, "\n")
	text = anyTagPattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "\r", "")
	text = trailingSpacePattern.ReplaceAllString(text, "\n")
	text = leadingSpacePattern.ReplaceAllString(text, "\n")
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CleanFragment flattens an HTML fragment onto one line and decodes the common entities.
func CleanFragment(html string) string {
	text := anyTagPattern.ReplaceAllString(html, " ")
	text = entityReplacer.Replace(text)
	return NormalizeWhitespace(text)
}

func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// Paragraphs splits plain text on blank lines.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r", "")
	if text == "" {
		return []string{}
	}
	out := make([]string, 0, 4)
	for _, part := range paragraphSplit.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Truncate shortens text to max runes, ending with an ellipsis when cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

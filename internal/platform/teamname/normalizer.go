package teamname

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the Combining Diacritical Marks block left behind by NFD.
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// Normalizer folds free-text club names into a comparable token.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	table Table
}

func NewNormalizer(table Table) Normalizer {
	return Normalizer{table: table}
}

// Normalize returns the canonical form of name, or "" when nothing identifiable is left.
func (n Normalizer) Normalize(name string) string {
	if name == "" {
		return ""
	}

	folded := strings.ToLower(strings.ReplaceAll(foldAccents(name), "&", " and "))
	tokens := splitTokens(folded)
	if len(tokens) == 0 {
		return stripNonAlnum(folded)
	}

	mapped := make([]string, 0, len(tokens))
	for _, token := range tokens {
		mapped = append(mapped, n.table.synonym(token))
	}

	kept := make([]string, 0, len(mapped))
	for _, token := range mapped {
		if n.table.isStopWord(token) {
			continue
		}
		kept = append(kept, token)
	}
	if len(kept) == 0 {
		kept = mapped
	}

	return strings.Join(kept, "")
}

func foldAccents(value string) string {
	// transformers carry state, so a fresh chain is built per call.
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks)))
	out, _, err := transform.String(chain, value)
	if err != nil {
		return value
	}
	return out
}

func splitTokens(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return !isASCIIAlnum(r)
	})
}

func stripNonAlnum(value string) string {
	var b strings.Builder
	for _, r := range value {
		if isASCIIAlnum(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

package lexicon

import (
	"regexp"
	"strings"
	"unicode"
)

// tickerPattern matches an optional cash-tag marker followed by 1-5
// uppercase letters, word-bounded.
var tickerPattern = regexp.MustCompile(`\$?\b[A-Z]{1,5}\b`)

// tokenPunctuation is the fixed punctuation set used to split coarse tokens
// when checking for context booster words.
const tokenPunctuation = `.,!?;:()[]{}"'` + "`" + `~@#%^&*-_=+<>/\|`

// Extractor turns free text into the ordered set of ticker symbols it
// mentions. Extraction is deterministic and has no side effects.
type Extractor struct {
	lex *Lexicon
}

// NewExtractor creates an Extractor over the given lexicon.
func NewExtractor(lex *Lexicon) *Extractor {
	return &Extractor{lex: lex}
}

// Extract returns the tickers mentioned in text, deduplicated and ordered by
// first occurrence. Acceptance policy:
//
//   - a cash-tagged symbol is accepted unconditionally
//   - a safe (non-ambiguous) multi-letter symbol is accepted
//   - a safe single-letter symbol needs a context booster in the message
//   - an ambiguous symbol needs a context booster in the message
//
// Empty or missing text yields an empty result, never an error.
func (e *Extractor) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	upper := strings.ToUpper(text)
	hasContext := e.hasContextBooster(upper)

	seen := make(map[string]struct{})
	var tickers []string
	for _, match := range tickerPattern.FindAllString(upper, -1) {
		hasCashTag := strings.HasPrefix(match, "$")
		symbol := strings.TrimPrefix(match, "$")

		if !e.lex.IsTicker(symbol) {
			continue
		}
		if !hasCashTag {
			if e.lex.IsAmbiguous(symbol) {
				if !hasContext {
					continue
				}
			} else if len(symbol) == 1 && !hasContext {
				// Single letters are too noisy without corroborating context.
				continue
			}
		}

		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		tickers = append(tickers, symbol)
	}

	return tickers
}

// hasContextBooster reports whether any coarse token of the uppercased text
// exactly matches a booster word. This is a single boolean for the whole
// message, not a per-token judgment.
func (e *Extractor) hasContextBooster(upper string) bool {
	tokens := strings.FieldsFunc(upper, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(tokenPunctuation, r)
	})
	for _, token := range tokens {
		if e.lex.IsBooster(token) {
			return true
		}
	}
	return false
}

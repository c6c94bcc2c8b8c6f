package lexicon

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Lexicon holds the immutable word sets used for ticker extraction: known
// ticker symbols, ambiguous tickers that collide with common English words,
// and context booster words that indicate financial discussion. It is built
// once at startup and injected into the extractor; it is never mutated.
type Lexicon struct {
	tickers   map[string]struct{}
	ambiguous map[string]struct{}
	boosters  map[string]struct{}
}

// New builds a Lexicon from the given word lists. Entries are normalized to
// uppercase.
func New(tickers, ambiguous, boosters []string) *Lexicon {
	return &Lexicon{
		tickers:   toSet(tickers),
		ambiguous: toSet(ambiguous),
		boosters:  toSet(boosters),
	}
}

type lexiconFile struct {
	Tickers         []string `json:"tickers"`
	Ambiguous       []string `json:"ambiguous"`
	ContextBoosters []string `json:"context_boosters"`
}

// LoadFromFile reads a lexicon definition from a JSON file. The dictionary
// content is opaque, swappable data.
func LoadFromFile(path string) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var f lexiconFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}
	if len(f.Tickers) == 0 {
		return nil, fmt.Errorf("lexicon file %s contains no tickers", path)
	}

	return New(f.Tickers, f.Ambiguous, f.ContextBoosters), nil
}

// IsTicker reports whether symbol is a known ticker.
func (l *Lexicon) IsTicker(symbol string) bool {
	_, ok := l.tickers[symbol]
	return ok
}

// IsAmbiguous reports whether symbol collides with a common English word.
func (l *Lexicon) IsAmbiguous(symbol string) bool {
	_, ok := l.ambiguous[symbol]
	return ok
}

// IsBooster reports whether token is a context booster word.
func (l *Lexicon) IsBooster(token string) bool {
	_, ok := l.boosters[token]
	return ok
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

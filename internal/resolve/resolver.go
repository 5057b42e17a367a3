package resolve

import (
	"strings"

	"go.uber.org/zap"

	"roamio/gazetteer/internal/lookup"
	"roamio/gazetteer/internal/mappings"
)

// Confidence classifies how a match was found. Fuzzy matches are the most
// likely source of false positives and are logged separately so they can be
// audited.
type Confidence int

const (
	ConfidenceExact Confidence = iota
	ConfidenceAlias
	ConfidenceFuzzy
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceAlias:
		return "alias"
	case ConfidenceFuzzy:
		return "fuzzy"
	}
	return "unknown"
}

// Match is a successful resolution
type Match struct {
	Ref        lookup.Ref
	Confidence Confidence
}

// minimum candidate length before the substring fallback is attempted;
// short names like "chad" substring-match far too many entries
const fuzzyMinLength = 5

// Resolver matches free-text names against an index of canonical entities.
// The index maps lowercased canonical names to entity refs.
type Resolver struct {
	allowFuzzy bool
	log        *zap.SugaredLogger
}

// New creates a resolver. When allowFuzzy is false the substring fallback
// stage is disabled entirely.
func New(allowFuzzy bool, log *zap.SugaredLogger) *Resolver {
	return &Resolver{allowFuzzy: allowFuzzy, log: log}
}

// Resolve finds the canonical entity for a free-text candidate. Matching is
// staged and short-circuits: exact, normalized+alias, reverse alias scan,
// then an optional substring fallback.
func (r *Resolver) Resolve(index map[string]lookup.Ref, candidate string) (Match, bool) {
	text := strings.ToLower(strings.TrimSpace(candidate))
	if text == "" || len(index) == 0 {
		return Match{}, false
	}

	// Stage 1: exact match on the lowercased candidate
	if ref, ok := index[text]; ok {
		return Match{Ref: ref, Confidence: ConfidenceExact}, true
	}

	// Stage 2: strip articles/qualifiers, then the alias table
	stripped := mappings.StripQualifiers(text)
	if ref, ok := index[stripped]; ok {
		return Match{Ref: ref, Confidence: ConfidenceAlias}, true
	}
	for _, form := range []string{text, stripped} {
		if canonical := mappings.CountryAlias(form); canonical != "" {
			if ref, ok := index[canonical]; ok {
				return Match{Ref: ref, Confidence: ConfidenceAlias}, true
			}
		}
	}

	// Stage 3: reverse alias scan; the candidate may itself be the
	// canonical side of an alias whose other spelling is indexed
	for alias, canonical := range mappings.CountryAliases() {
		if canonical != text && canonical != stripped {
			continue
		}
		if ref, ok := index[alias]; ok {
			return Match{Ref: ref, Confidence: ConfidenceAlias}, true
		}
	}

	// Stage 4: substring fallback, logged for audit
	if r.allowFuzzy && len(stripped) >= fuzzyMinLength {
		for name, ref := range index {
			if strings.Contains(name, stripped) || strings.Contains(stripped, name) {
				if r.log != nil {
					r.log.Warnw("fuzzy entity match",
						"candidate", candidate,
						"matched", ref.Label,
						"match", ConfidenceFuzzy.String(),
					)
				}
				return Match{Ref: ref, Confidence: ConfidenceFuzzy}, true
			}
		}
	}

	return Match{}, false
}

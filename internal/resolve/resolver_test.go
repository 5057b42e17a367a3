package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/gazetteer/internal/lookup"
)

func countryIndex() map[string]lookup.Ref {
	return map[string]lookup.Ref{
		"united states":                    {ID: "us-1", Label: "United States"},
		"united kingdom":                   {ID: "gb-1", Label: "United Kingdom"},
		"democratic republic of the congo": {ID: "cd-1", Label: "Democratic Republic of the Congo"},
		"iceland":                          {ID: "is-1", Label: "Iceland"},
		"netherlands":                      {ID: "nl-1", Label: "Netherlands"},
		"south georgia and the south sandwich islands": {ID: "gs-1", Label: "South Georgia and the South Sandwich Islands"},
	}
}

func TestResolveExact(t *testing.T) {
	r := New(true, nil)

	m, ok := r.Resolve(countryIndex(), "Iceland")
	require.True(t, ok)
	assert.Equal(t, "is-1", m.Ref.ID)
	assert.Equal(t, ConfidenceExact, m.Confidence)

	m, ok = r.Resolve(countryIndex(), "united states")
	require.True(t, ok)
	assert.Equal(t, "us-1", m.Ref.ID)
}

func TestResolveAliasVariantsAgree(t *testing.T) {
	r := New(true, nil)
	idx := countryIndex()

	variants := []string{"USA", "United States of America", "united states"}
	for _, v := range variants {
		m, ok := r.Resolve(idx, v)
		require.True(t, ok, "variant %q", v)
		assert.Equal(t, "us-1", m.Ref.ID, "variant %q", v)
	}
}

// The countries dataset names the Koreas "South Korea" and "North Korea";
// the factbook-style "Korea, South" spellings must land there through the
// alias table, not drift into the fuzzy stage.
func TestResolveKoreaSpellings(t *testing.T) {
	r := New(false, nil)
	idx := map[string]lookup.Ref{
		"south korea": {ID: "kr-1", Label: "South Korea"},
		"north korea": {ID: "kp-1", Label: "North Korea"},
	}

	for mention, want := range map[string]string{
		"Republic of Korea": "kr-1",
		"Korea, South":      "kr-1",
		"DPRK":              "kp-1",
		"Korea, North":      "kp-1",
	} {
		m, ok := r.Resolve(idx, mention)
		require.True(t, ok, "mention %q", mention)
		assert.Equal(t, want, m.Ref.ID, "mention %q", mention)
		assert.Equal(t, ConfidenceAlias, m.Confidence, "mention %q", mention)
	}
}

func TestResolveStripsQualifiers(t *testing.T) {
	r := New(true, nil)

	m, ok := r.Resolve(countryIndex(), "The Netherlands")
	require.True(t, ok)
	assert.Equal(t, "nl-1", m.Ref.ID)
	assert.Equal(t, ConfidenceAlias, m.Confidence)
}

func TestResolveHistoricalName(t *testing.T) {
	r := New(true, nil)

	m, ok := r.Resolve(countryIndex(), "Zaire")
	require.True(t, ok)
	assert.Equal(t, "cd-1", m.Ref.ID)
	assert.Equal(t, ConfidenceAlias, m.Confidence)
}

func TestResolveReverseAlias(t *testing.T) {
	r := New(true, nil)

	// The index holds the alias spelling; the candidate is the canonical one
	idx := map[string]lookup.Ref{
		"burma": {ID: "mm-1", Label: "Burma"},
	}
	m, ok := r.Resolve(idx, "Myanmar")
	require.True(t, ok)
	assert.Equal(t, "mm-1", m.Ref.ID)
	assert.Equal(t, ConfidenceAlias, m.Confidence)
}

func TestResolveFuzzySubstring(t *testing.T) {
	r := New(true, nil)

	m, ok := r.Resolve(countryIndex(), "South Georgia")
	require.True(t, ok)
	assert.Equal(t, "gs-1", m.Ref.ID)
	assert.Equal(t, ConfidenceFuzzy, m.Confidence)
}

func TestResolveFuzzyDisabled(t *testing.T) {
	r := New(false, nil)

	_, ok := r.Resolve(countryIndex(), "South Georgia")
	assert.False(t, ok)
}

func TestResolveFuzzyRequiresMinimumLength(t *testing.T) {
	r := New(true, nil)

	// "land" is a substring of Iceland and Netherlands but far too short to
	// trust
	_, ok := r.Resolve(countryIndex(), "land")
	assert.False(t, ok)
}

func TestResolveNoMatch(t *testing.T) {
	r := New(true, nil)

	_, ok := r.Resolve(countryIndex(), "Atlantis")
	assert.False(t, ok)

	_, ok = r.Resolve(countryIndex(), "")
	assert.False(t, ok)
}

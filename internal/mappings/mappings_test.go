package mappings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactbookToISO2(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"cg", "CD"}, // Congo (Kinshasa), not Republic of the Congo
		{"cf", "CG"},
		{"gm", "DE"}, // Germany, not Gambia
		{"ja", "JP"},
		{"uk", "GB"},
		{"us", "US"},
		{"UK", "GB"}, // case-insensitive
		{" sz ", "CH"},
		{"xx", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FactbookToISO2(tt.code), "code %q", tt.code)
	}
}

func TestLanguageToISO1(t *testing.T) {
	assert.Equal(t, "en", LanguageToISO1("eng"))
	assert.Equal(t, "de", LanguageToISO1("deu"))
	assert.Equal(t, "de", LanguageToISO1("ger")) // bibliographic variant
	assert.Equal(t, "fr", LanguageToISO1("fre"))
	assert.Equal(t, "fr", LanguageToISO1("fr")) // already two-letter
	assert.Equal(t, "", LanguageToISO1("xyz"))
}

func TestLanguageNativeName(t *testing.T) {
	assert.Equal(t, "Deutsch", LanguageNativeName("de", "German"))
	assert.Equal(t, "Quechua", LanguageNativeName("qu", "Quechua"))
}

func TestCountryAlias(t *testing.T) {
	assert.Equal(t, "united states", CountryAlias("USA"))
	assert.Equal(t, "united states", CountryAlias("United States of America"))
	assert.Equal(t, "democratic republic of the congo", CountryAlias("Zaire"))
	assert.Equal(t, "myanmar", CountryAlias("Burma"))
	assert.Equal(t, "", CountryAlias("Atlantis"))
}

func TestStripQualifiers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Netherlands", "netherlands"},
		{"Republic of Ireland", "ireland"},
		{"the republic of iceland", "iceland"},
		{"Kingdom of Bhutan", "bhutan"},
		{"Democratic Republic of the Congo", "the congo"},
		{"France", "france"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripQualifiers(tt.in), "input %q", tt.in)
	}
}

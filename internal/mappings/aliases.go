package mappings

import "strings"

// countryAliases maps differently-spelled source mentions of a country to
// the canonical name used by the countries dataset. Keys and values are
// lowercase. Covers abbreviations, renames and historical names.
var countryAliases = map[string]string{
	// abbreviations
	"usa":                      "united states",
	"u.s.a.":                   "united states",
	"u.s.":                     "united states",
	"us":                       "united states",
	"united states of america": "united states",
	"america":                  "united states",
	"uk":                       "united kingdom",
	"u.k.":                     "united kingdom",
	"great britain":            "united kingdom",
	"britain":                  "united kingdom",
	"england":                  "united kingdom",
	"uae":                      "united arab emirates",
	"drc":                      "democratic republic of the congo",
	"dprk":                     "north korea",
	"prc":                      "china",
	"fyrom":                    "north macedonia",

	// alternate and long-form names
	"dr congo":                         "democratic republic of the congo",
	"congo-kinshasa":                   "democratic republic of the congo",
	"congo, democratic republic":       "democratic republic of the congo",
	"congo-brazzaville":                "republic of the congo",
	"congo":                            "republic of the congo",
	"korea, south":                     "south korea",
	"republic of korea":                "south korea",
	"korea, north":                     "north korea",
	"russian federation":               "russia",
	"holland":                          "netherlands",
	"vatican":                          "vatican city",
	"holy see":                         "vatican city",
	"turkiye":                          "turkey",
	"türkiye":                          "turkey",
	"republic of china":                "taiwan",
	"people's republic of china":       "china",
	"côte d'ivoire":                    "cote d'ivoire",
	"ivory coast":                      "cote d'ivoire",
	"bosnia":                           "bosnia and herzegovina",
	"brunei darussalam":                "brunei",
	"lao people's democratic republic": "laos",
	"syrian arab republic":             "syria",
	"federated states of micronesia":   "micronesia",
	"slovak republic":                  "slovakia",

	// renamed countries
	"burma":          "myanmar",
	"swaziland":      "eswatini",
	"macedonia":      "north macedonia",
	"czech republic": "czechia",
	"cape verde":     "cabo verde",
	"east timor":     "timor-leste",

	// historical names
	"zaire":        "democratic republic of the congo",
	"persia":       "iran",
	"ceylon":       "sri lanka",
	"siam":         "thailand",
	"formosa":      "taiwan",
	"byelorussia":  "belarus",
	"moldavia":     "moldova",
	"upper volta":  "burkina faso",
	"rhodesia":     "zimbabwe",
	"abyssinia":    "ethiopia",
}

// strippablePrefixes are leading articles and political qualifiers removed
// during name normalization. Longer prefixes come first so "democratic
// republic of " wins over "republic of ".
var strippablePrefixes = []string{
	"the democratic republic of ",
	"democratic republic of ",
	"the federal republic of ",
	"federal republic of ",
	"the people's republic of ",
	"people's republic of ",
	"the islamic republic of ",
	"islamic republic of ",
	"the republic of ",
	"republic of ",
	"the kingdom of ",
	"kingdom of ",
	"the state of ",
	"state of ",
	"the sultanate of ",
	"sultanate of ",
	"the principality of ",
	"principality of ",
	"the commonwealth of ",
	"commonwealth of ",
	"the ",
}

// CountryAlias returns the canonical lowercase name for a known alias, or ""
// when the text is not a registered alias.
func CountryAlias(text string) string {
	return countryAliases[strings.ToLower(strings.TrimSpace(text))]
}

// CountryAliases returns the full alias table for reverse scans. Callers
// must treat the map as read-only.
func CountryAliases() map[string]string {
	return countryAliases
}

// StripQualifiers removes leading articles and political qualifiers from a
// name ("The Republic of Iceland" -> "iceland"). The result is lowercase.
func StripQualifiers(name string) string {
	n := strings.TrimSpace(strings.ToLower(name))
	for _, prefix := range strippablePrefixes {
		if strings.HasPrefix(n, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(n, prefix))
		}
	}
	return n
}

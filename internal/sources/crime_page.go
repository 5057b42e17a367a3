package sources

import (
	"regexp"
	"strconv"
	"strings"

	"roamio/gazetteer/internal/models"
)

// The remote crime-index page is a plain HTML rank table. Scraping it is the
// opt-in fallback; the extracted JSON dataset is always preferred because
// the page layout changes without notice.

var (
	crimeRowPattern  = regexp.MustCompile(`(?s)<tr[^>]*>(.*?)</tr>`)
	crimeCellPattern = regexp.MustCompile(`(?s)<td[^>]*>(.*?)</td>`)
	htmlTagPattern   = regexp.MustCompile(`<[^>]+>`)
)

func stripTags(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

// ParseCrimeIndexPage extracts (rank, country, index) rows out of the remote
// page's table for the given year. Rows that do not look like data rows are
// ignored rather than failing the parse.
func ParseCrimeIndexPage(raw []byte, year int) []models.RawCrimeEntry {
	var entries []models.RawCrimeEntry

	for _, row := range crimeRowPattern.FindAllStringSubmatch(string(raw), -1) {
		cells := crimeCellPattern.FindAllStringSubmatch(row[1], -1)
		if len(cells) < 3 {
			continue
		}

		rank, err := strconv.Atoi(stripTags(cells[0][1]))
		if err != nil {
			continue
		}
		country := stripTags(cells[1][1])
		if country == "" {
			continue
		}
		index, err := strconv.ParseFloat(stripTags(cells[2][1]), 64)
		if err != nil {
			continue
		}

		entries = append(entries, models.RawCrimeEntry{
			Country: country,
			Year:    year,
			Index:   index,
			Rank:    rank,
		})
	}
	return entries
}

package sources

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"

	"roamio/gazetteer/internal/models"
)

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
}

// ParseFeed decodes an RSS 2.0 document into raw feed items
func ParseFeed(raw []byte) ([]models.RawFeedItem, error) {
	var doc rssDocument
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.Strict = false
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	items := make([]models.RawFeedItem, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		items = append(items, models.RawFeedItem{
			Title:       item.Title,
			Description: item.Description,
			Link:        item.Link,
			PubDate:     item.PubDate,
		})
	}
	return items, nil
}

// LoadFeed reads and parses a feed from a local file
func LoadFeed(path string) ([]models.RawFeedItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseFeed(raw)
}

package lookup

import (
	"context"
	"testing"

	"roamio/gazetteer/internal/store"
)

func seedAirports(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	ctx := context.Background()

	airports := []store.Document{
		{"name": "Keflavik International", "iata": "KEF", "icao": "BIKF", "externalID": 16},
		{"name": "Heathrow", "iata": "LHR", "icao": "EGLL", "externalID": 507},
		{"name": "No Codes Field", "externalID": 999},
		{"name": "Duplicate IATA", "iata": "KEF", "externalID": 1000},
	}
	for _, doc := range airports {
		if _, err := s.Create(ctx, "airports", doc); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	return s
}

func TestBuildIndexesEveryKeySpace(t *testing.T) {
	s := seedAirports(t)

	tables, err := Build(context.Background(), s, "airports", "name",
		ByFieldUpper("iata", "iata"),
		ByFieldUpper("icao", "icao"),
		ByNumericField("externalID", "externalID"),
	)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ref, ok := tables.Get("iata", "KEF")
	if !ok {
		t.Fatal("Expected KEF in iata index")
	}
	if ref.Label != "Keflavik International" {
		t.Errorf("Expected first writer to win for duplicate IATA, got %s", ref.Label)
	}

	if _, ok := tables.Get("icao", "EGLL"); !ok {
		t.Error("Expected EGLL in icao index")
	}
	if _, ok := tables.Get("externalID", "507"); !ok {
		t.Error("Expected externalID 507 in numeric index")
	}
}

func TestBuildToleratesMissingKeys(t *testing.T) {
	s := seedAirports(t)

	tables, err := Build(context.Background(), s, "airports", "name",
		ByFieldUpper("iata", "iata"),
		ByNumericField("externalID", "externalID"),
	)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// The record with no codes is absent from the iata index but still
	// present under its external id.
	if got := tables.Size("iata"); got != 2 {
		t.Errorf("Expected 2 iata entries, got %d", got)
	}
	if _, ok := tables.Get("externalID", "999"); !ok {
		t.Error("Expected codeless record in externalID index")
	}
}

func TestGetUnknownSpace(t *testing.T) {
	tables := Tables{}
	if _, ok := tables.Get("nope", "KEF"); ok {
		t.Error("Expected miss on unknown key space")
	}
}

func TestByFieldLower(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	if _, err := s.Create(ctx, "countries", store.Document{"name": "Iceland", "iso2": "IS"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tables, err := Build(ctx, s, "countries", "name", ByFieldLower("name", "name"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := tables.Get("name", "iceland"); !ok {
		t.Error("Expected lowercased name key")
	}
}

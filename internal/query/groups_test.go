package query

import (
	"slices"
	"testing"

	"folio/internal/models"
)

func tabBy(artist string) func(*models.Entry) {
	return func(e *models.Entry) {
		e.Kind = models.KindTab
		e.Meta.Tab = &models.TabMeta{Artist: artist}
	}
}

func musicOf(typ models.MusicType) func(*models.Entry) {
	return func(e *models.Entry) {
		e.Kind = models.KindMusic
		e.Meta.Music = &models.MusicMeta{Type: typ}
	}
}

func TestByArtist(t *testing.T) {
	entries := Sorted([]*models.Entry{
		entry("wonderwall", day(2024, 1, 1), tabBy("Oasis")),
		entry("creep", day(2024, 3, 1), tabBy("Radiohead")),
		entry("live-forever", day(2024, 2, 1), tabBy("Oasis")),
		entry("post", day(2024, 4, 1)),
	}, Production)

	got := ByArtist(entries)
	if len(got) != 2 {
		t.Fatalf("groups = %+v", got)
	}
	if got[0].Artist != "Radiohead" || got[1].Artist != "Oasis" {
		t.Errorf("artist order = %s, %s", got[0].Artist, got[1].Artist)
	}
	if names := ids(got[1].Entries); !slices.Equal(names, []string{"live-forever", "wonderwall"}) {
		t.Errorf("Oasis tabs = %v", names)
	}

	if empty := ByArtist(nil); empty == nil || len(empty) != 0 {
		t.Errorf("ByArtist(nil) = %v, want empty non-nil", empty)
	}
}

func TestByMusicType(t *testing.T) {
	entries := []*models.Entry{
		entry("a", day(2024, 1, 1), musicOf(models.MusicTypeJam)),
		entry("b", day(2024, 1, 2), musicOf(models.MusicTypeCover)),
		entry("c", day(2024, 1, 3), musicOf(models.MusicTypeJam)),
	}

	got := ByMusicType(entries)
	if len(got) != 4 {
		t.Fatalf("groups = %d, want 4", len(got))
	}
	wantTypes := []models.MusicType{models.MusicTypeCover, models.MusicTypeOriginal, models.MusicTypeJam, models.MusicTypeLesson}
	for i, g := range got {
		if g.Type != wantTypes[i] {
			t.Errorf("group %d type = %s, want %s", i, g.Type, wantTypes[i])
		}
	}
	if names := ids(got[2].Entries); !slices.Equal(names, []string{"a", "c"}) {
		t.Errorf("jams = %v", names)
	}
	if got[1].Entries == nil || len(got[1].Entries) != 0 {
		t.Errorf("originals = %v, want empty non-nil", got[1].Entries)
	}
}

func TestTotalWords(t *testing.T) {
	entries := []*models.Entry{
		entry("a", day(2024, 1, 1), func(e *models.Entry) { e.Words = 120 }),
		entry("b", day(2024, 1, 2), func(e *models.Entry) { e.Words = 30 }),
	}
	if got := TotalWords(entries); got != 150 {
		t.Errorf("TotalWords = %d, want 150", got)
	}
	if got := TotalWords(nil); got != 0 {
		t.Errorf("TotalWords(nil) = %d", got)
	}
}

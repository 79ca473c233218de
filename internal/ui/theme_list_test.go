package ui

import (
	"testing"

	"github.com/unkn0wn-root/tinct/internal/theme"
)

func TestSubstringFilterMatchesCaseInsensitive(t *testing.T) {
	targets := []string{"Darcula", "Light", "Solarized Dark"}

	ranks := substringFilter("dar", targets)
	if len(ranks) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(ranks))
	}
	if ranks[0].Index != 0 || ranks[1].Index != 2 {
		t.Fatalf("expected indexes [0 2], got [%d %d]", ranks[0].Index, ranks[1].Index)
	}
	wantMatched := []int{0, 1, 2}
	if len(ranks[0].MatchedIndexes) != len(wantMatched) {
		t.Fatalf("expected %d matched indexes, got %d", len(wantMatched), len(ranks[0].MatchedIndexes))
	}
	for i, idx := range wantMatched {
		if ranks[0].MatchedIndexes[i] != idx {
			t.Fatalf("expected matched index %d at %d, got %d", idx, i, ranks[0].MatchedIndexes[i])
		}
	}
}

func TestSubstringFilterUppercaseQuery(t *testing.T) {
	ranks := substringFilter("DARK", []string{"Solarized Dark", "Light"})
	if len(ranks) != 1 || ranks[0].Index != 0 {
		t.Fatalf("expected single match on index 0, got %+v", ranks)
	}
	// "Dark" starts at rune offset 10 in "Solarized Dark".
	if ranks[0].MatchedIndexes[0] != 10 {
		t.Fatalf("expected first matched index 10, got %d", ranks[0].MatchedIndexes[0])
	}
}

func TestSubstringFilterNoMatch(t *testing.T) {
	if ranks := substringFilter("zzz", []string{"Darcula", "Light"}); len(ranks) != 0 {
		t.Fatalf("expected no matches, got %d", len(ranks))
	}
}

func TestSubstringFilterEmptyQueryMatchesAll(t *testing.T) {
	targets := []string{"Darcula", "Light"}
	ranks := substringFilter("  ", targets)
	if len(ranks) != len(targets) {
		t.Fatalf("expected %d matches, got %d", len(targets), len(ranks))
	}
	if len(ranks[0].MatchedIndexes) != 0 {
		t.Fatalf("expected no highlight for empty query, got %v", ranks[0].MatchedIndexes)
	}
}

func TestMakeThemeItemsMarksActive(t *testing.T) {
	catalog, err := theme.LoadCatalog(nil)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	items := makeThemeItems(catalog, "light")
	if len(items) != catalog.Len() {
		t.Fatalf("expected %d items, got %d", catalog.Len(), len(items))
	}
	var activeCount int
	for _, item := range items {
		entry, ok := item.(themeItem)
		if !ok {
			t.Fatalf("unexpected item type %T", item)
		}
		if entry.active {
			activeCount++
			if entry.key != "light" {
				t.Fatalf("expected active key %q, got %q", "light", entry.key)
			}
			if entry.Title() != "Light (active)" {
				t.Fatalf("expected active badge in title, got %q", entry.Title())
			}
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active item, got %d", activeCount)
	}
}

func TestThemeItemFilterValueIsDisplayName(t *testing.T) {
	item := themeItem{key: "gruvbox-dark", name: "Gruvbox Dark"}
	if item.FilterValue() != "Gruvbox Dark" {
		t.Fatalf("expected filter value %q, got %q", "Gruvbox Dark", item.FilterValue())
	}
}

func TestHumaniseKey(t *testing.T) {
	cases := map[string]string{
		"":               "Theme",
		"gruvbox-dark":   "Gruvbox Dark",
		"solarized":      "Solarized",
		"one-two-three":  "One Two Three",
		"already-Caps-x": "Already Caps X",
	}
	for in, want := range cases {
		if got := humaniseKey(in); got != want {
			t.Fatalf("humaniseKey(%q): expected %q, got %q", in, want, got)
		}
	}
}

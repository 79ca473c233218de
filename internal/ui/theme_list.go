package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/list"

	"github.com/unkn0wn-root/tinct/internal/theme"
)

type themeItem struct {
	key     string
	name    string
	summary string
	variant theme.Variant
	source  theme.Source
	path    string
	active  bool
}

func (t themeItem) Title() string {
	if t.active {
		return fmt.Sprintf("%s (active)", t.name)
	}
	return t.name
}

func (t themeItem) Description() string {
	return t.summary
}

func (t themeItem) FilterValue() string {
	return t.name
}

func makeThemeItems(catalog theme.Catalog, activeKey string) []list.Item {
	defs := catalog.All()
	if len(defs) == 0 {
		return nil
	}
	items := make([]list.Item, 0, len(defs))
	normalizedActive := strings.TrimSpace(activeKey)
	for _, def := range defs {
		name := strings.TrimSpace(def.DisplayName)
		if name == "" {
			name = humaniseKey(def.Key)
		}
		var segments []string
		if desc := strings.TrimSpace(def.Metadata.Description); desc != "" {
			segments = append(segments, desc)
		}
		metaParts := make([]string, 0, 3)
		if author := strings.TrimSpace(def.Metadata.Author); author != "" {
			metaParts = append(metaParts, fmt.Sprintf("Author: %s", author))
		}
		metaParts = append(metaParts, fmt.Sprintf("Variant: %s", def.Variant))
		metaParts = append(metaParts, fmt.Sprintf("Source: %s", def.Source))
		segments = append(segments, strings.Join(metaParts, "  |  "))
		items = append(items, themeItem{
			key:     def.Key,
			name:    name,
			summary: strings.Join(segments, "\n"),
			variant: def.Variant,
			source:  def.Source,
			path:    def.Path,
			active:  normalizedActive != "" && strings.EqualFold(def.Key, normalizedActive),
		})
	}
	return items
}

// substringFilter ranks items whose value contains the query,
// case-insensitively. The matched rune positions feed the list's
// filter-match highlight.
func substringFilter(term string, targets []string) []list.Rank {
	query := loweredRunes(strings.TrimSpace(term))
	ranks := make([]list.Rank, 0, len(targets))
	if len(query) == 0 {
		for i := range targets {
			ranks = append(ranks, list.Rank{Index: i})
		}
		return ranks
	}
	for i, target := range targets {
		idx := runeIndex(loweredRunes(target), query)
		if idx < 0 {
			continue
		}
		matched := make([]int, len(query))
		for j := range matched {
			matched[j] = idx + j
		}
		ranks = append(ranks, list.Rank{Index: i, MatchedIndexes: matched})
	}
	return ranks
}

// loweredRunes lowercases rune by rune so match indexes stay aligned
// with the rendered string.
func loweredRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	if len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func humaniseKey(key string) string {
	if key == "" {
		return "Theme"
	}
	parts := strings.Split(key, "-")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

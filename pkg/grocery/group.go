package grocery

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/korjavin/matchmygrocery/pkg/category"
	"github.com/korjavin/matchmygrocery/pkg/models"
)

// SortOption selects the order of a grocery list
type SortOption string

// Sort options
const (
	SortCategory SortOption = "category"
	SortName     SortOption = "name"
	SortRecent   SortOption = "recent"
	SortChecked  SortOption = "checked"
)

// SortOptions lists the valid sort options
var SortOptions = []SortOption{SortCategory, SortName, SortRecent, SortChecked}

// ErrUnknownSortOption is returned by ParseSortOption for unrecognised input
var ErrUnknownSortOption = errors.New("unknown sort option")

var sortAliases = map[string]SortOption{
	"category":       SortCategory,
	"categories":     SortCategory,
	"aisle":          SortCategory,
	"name":           SortName,
	"alpha":          SortName,
	"alphabetical":   SortName,
	"recent":         SortRecent,
	"newest":         SortRecent,
	"checked":        SortChecked,
	"status":         SortChecked,
	"checked-status": SortChecked,
}

// ParseSortOption parses user input such as "name" or "Checked-Status"
func ParseSortOption(s string) (SortOption, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	if opt, ok := sortAliases[key]; ok {
		return opt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortOption, s)
}

// Group is one category bucket of a grocery list
type Group struct {
	Category string               `json:"category"`
	Items    []models.GroceryItem `json:"items"`
}

// CategoryOf returns the stored category of item, or the category inferred
// from its name when none is stored.
func CategoryOf(item models.GroceryItem) string {
	if c := strings.TrimSpace(item.Category); c != "" {
		return c
	}
	return category.Categorize(item.Name)
}

// GroupItems buckets items by category. Categories appear in the order they are
// first seen and items keep their input order within a bucket.
func GroupItems(items []models.GroceryItem) []Group {
	groups := make([]Group, 0)
	index := make(map[string]int)

	for _, item := range items {
		c := CategoryOf(item)
		i, ok := index[c]
		if !ok {
			i = len(groups)
			index[c] = i
			groups = append(groups, Group{Category: c})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// Flatten concatenates the items of groups in order
func Flatten(groups []Group) []models.GroceryItem {
	items := make([]models.GroceryItem, 0)
	for _, g := range groups {
		items = append(items, g.Items...)
	}
	return items
}

// Sort returns a sorted copy of items. The sort is stable, so ties keep their
// input order. An unknown option returns the items in input order.
func Sort(items []models.GroceryItem, option SortOption) []models.GroceryItem {
	sorted := make([]models.GroceryItem, len(items))
	copy(sorted, items)

	var less func(a, b models.GroceryItem) bool
	switch option {
	case SortCategory:
		less = func(a, b models.GroceryItem) bool {
			return categoryRank(CategoryOf(a)) < categoryRank(CategoryOf(b))
		}
	case SortName:
		less = func(a, b models.GroceryItem) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortRecent:
		less = func(a, b models.GroceryItem) bool {
			return a.AddedAt.After(b.AddedAt)
		}
	case SortChecked:
		less = func(a, b models.GroceryItem) bool {
			return !a.Checked && b.Checked
		}
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// categoryRank orders categories alphabetically with Other last
func categoryRank(c string) string {
	if c == category.Other {
		return "\xff"
	}
	return strings.ToLower(c)
}

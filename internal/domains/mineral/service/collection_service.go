package service

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"mineral-catalog/internal/domains/mineral/model"
)

const firstID = 1

type collectionService struct {
	mu       sync.RWMutex
	minerals []model.Mineral
	nextID   int
}

// NewCollectionService returns an empty collection whose first id is 1.
func NewCollectionService() CollectionService {
	return &collectionService{nextID: firstID}
}

// ========================================
// CRUD
// ========================================

func (s *collectionService) Add(fields model.Fields) model.Mineral {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(fields)
}

// AddMineral ignores m.ID so imported rows never collide with live ids.
func (s *collectionService) AddMineral(m model.Mineral) model.Mineral {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(m.Fields)
}

func (s *collectionService) AddAll(minerals []model.Mineral) []model.Mineral {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]model.Mineral, 0, len(minerals))
	for _, m := range minerals {
		added = append(added, s.appendLocked(m.Fields))
	}
	return added
}

func (s *collectionService) appendLocked(fields model.Fields) model.Mineral {
	m := model.NewMineral(s.nextID, fields)
	s.nextID++
	s.minerals = append(s.minerals, m)
	return m
}

func (s *collectionService) RemoveByID(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.minerals {
		if m.ID == id {
			s.minerals = slices.Delete(s.minerals, i, i+1)
			return true
		}
	}
	return false
}

// RemoveByName removes every record whose name equals name, ignoring case.
func (s *collectionService) RemoveByName(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.minerals)
	s.minerals = slices.DeleteFunc(s.minerals, func(m model.Mineral) bool {
		return strings.EqualFold(m.Name, name)
	})
	return len(s.minerals) < before
}

func (s *collectionService) GetByID(id int) (model.Mineral, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.minerals {
		if m.ID == id {
			return m, true
		}
	}
	return model.Mineral{ID: model.UnassignedID}, false
}

func (s *collectionService) All() []model.Mineral {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.minerals)
}

func (s *collectionService) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.minerals))
	for _, m := range s.minerals {
		ids = append(ids, m.ID)
	}
	return ids
}

func (s *collectionService) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.minerals)
}

func (s *collectionService) IsEmpty() bool {
	return s.Size() == 0
}

// Clear empties the collection and restarts ids at 1.
func (s *collectionService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minerals = nil
	s.nextID = firstID
}

// ========================================
// SEARCH & FILTER
// ========================================

// Blank queries return an empty result for every filter except
// FilterByValueCategory, which returns the whole collection.

func (s *collectionService) SearchByName(query string) []model.Mineral {
	if isBlank(query) {
		return []model.Mineral{}
	}
	q := strings.ToLower(query)
	return s.filter(func(m model.Mineral) bool {
		return containsFold(m.Name, q)
	})
}

func (s *collectionService) SearchAllFields(query string) []model.Mineral {
	if isBlank(query) {
		return []model.Mineral{}
	}
	q := strings.ToLower(query)
	return s.filter(func(m model.Mineral) bool {
		return containsFold(m.Name, q) ||
			containsFold(m.Formula, q) ||
			containsFold(m.Class, q) ||
			containsFold(m.Color, q) ||
			containsFold(m.Location, q) ||
			containsFold(m.Application, q) ||
			containsFold(m.InterestingFacts, q)
	})
}

// FilterByClass matches the whole class name, not a substring.
func (s *collectionService) FilterByClass(class string) []model.Mineral {
	if isBlank(class) {
		return []model.Mineral{}
	}
	return s.filter(func(m model.Mineral) bool {
		return strings.EqualFold(m.Class, class)
	})
}

func (s *collectionService) FilterByColor(color string) []model.Mineral {
	if isBlank(color) {
		return []model.Mineral{}
	}
	q := strings.ToLower(color)
	return s.filter(func(m model.Mineral) bool {
		return containsFold(m.Color, q)
	})
}

func (s *collectionService) FilterByLocation(location string) []model.Mineral {
	if isBlank(location) {
		return []model.Mineral{}
	}
	q := strings.ToLower(location)
	return s.filter(func(m model.Mineral) bool {
		return containsFold(m.Location, q)
	})
}

// FilterByValueCategory returns everything for a blank category; the
// "all categories" view of the web page relies on it.
func (s *collectionService) FilterByValueCategory(category string) []model.Mineral {
	if isBlank(category) {
		return s.All()
	}
	q := strings.ToLower(strings.TrimSpace(category))
	return s.filter(func(m model.Mineral) bool {
		return containsFold(m.ValueCategory, q)
	})
}

func (s *collectionService) filter(keep func(model.Mineral) bool) []model.Mineral {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Mineral{}
	for _, m := range s.minerals {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// ========================================
// SORT
// ========================================

func (s *collectionService) SortByName() []model.Mineral {
	sorted := s.All()
	slices.SortStableFunc(sorted, func(a, b model.Mineral) int {
		return strings.Compare(a.Name, b.Name)
	})
	return sorted
}

func (s *collectionService) SortByHardness() []model.Mineral {
	sorted := s.All()
	slices.SortStableFunc(sorted, func(a, b model.Mineral) int {
		return cmp.Compare(model.SortHardness(a.Hardness), model.SortHardness(b.Hardness))
	})
	return sorted
}

// ========================================
// AGGREGATES
// ========================================

const topLocations = 5

func (s *collectionService) Stats() model.Stats {
	all := s.All()

	stats := model.Stats{
		Total:           len(all),
		ByClass:         []model.CountEntry{},
		ByLocation:      []model.CountEntry{},
		TopLocations:    []model.CountEntry{},
		ByValueCategory: []model.CountEntry{},
	}
	if len(all) == 0 {
		return stats
	}

	byClass := map[string]int{}
	byLocation := map[string]int{}
	byCategory := map[string]int{}
	locations := map[string]struct{}{}
	colors := map[string]struct{}{}

	stats.MinHardness = model.StatsHardness(all[0].Hardness)
	stats.MaxHardness = stats.MinHardness

	for _, m := range all {
		byClass[m.Class]++
		byLocation[m.Location]++

		category := m.ValueCategory
		if category == "" {
			category = model.UnspecifiedCategory
		}
		byCategory[category]++

		if m.Location != "" {
			locations[m.Location] = struct{}{}
		}
		if m.Color != "" {
			colors[m.Color] = struct{}{}
		}

		h := model.StatsHardness(m.Hardness)
		stats.MinHardness = min(stats.MinHardness, h)
		stats.MaxHardness = max(stats.MaxHardness, h)
	}

	stats.ByClass = rankCounts(byClass)
	stats.ByLocation = rankCounts(byLocation)
	stats.TopLocations = stats.ByLocation[:min(topLocations, len(stats.ByLocation))]
	stats.ByValueCategory = rankCounts(byCategory)
	stats.UniqueLocations = len(locations)
	stats.UniqueColors = len(colors)
	return stats
}

// rankCounts orders groups by count descending, then key ascending.
func rankCounts(counts map[string]int) []model.CountEntry {
	entries := make([]model.CountEntry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, model.CountEntry{Key: k, Count: v})
	}
	slices.SortFunc(entries, func(a, b model.CountEntry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return entries
}

// Classes returns the distinct classes, sorted.
func (s *collectionService) Classes() []string {
	return s.distinct(func(m model.Mineral) string { return m.Class }, false)
}

// Locations returns the distinct raw location strings, sorted. Joined
// strings such as "Ural, Brazil" are not split.
func (s *collectionService) Locations() []string {
	return s.distinct(func(m model.Mineral) string { return m.Location }, false)
}

// ValueCategories returns the sorted distinct non-blank categories.
func (s *collectionService) ValueCategories() []string {
	return s.distinct(func(m model.Mineral) string { return m.ValueCategory }, true)
}

func (s *collectionService) distinct(key func(model.Mineral) string, skipBlank bool) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	out := []string{}
	for _, m := range s.minerals {
		k := key(m)
		if skipBlank && isBlank(k) {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// containsFold expects lowerQuery to be lower-cased already.
func containsFold(value, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(value), lowerQuery)
}

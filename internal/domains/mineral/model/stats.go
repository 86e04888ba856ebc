package model

// UnspecifiedCategory labels minerals without a value category in stats.
const UnspecifiedCategory = "Unspecified"

// CountEntry is one group of a grouped count.
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Stats summarizes the in-memory collection.
type Stats struct {
	Total           int          `json:"total"`
	ByClass         []CountEntry `json:"by_class"`
	ByLocation      []CountEntry `json:"by_location"`
	TopLocations    []CountEntry `json:"top_locations"`
	ByValueCategory []CountEntry `json:"by_value_category"`
	UniqueLocations int          `json:"unique_locations"`
	UniqueColors    int          `json:"unique_colors"`
	MinHardness     float64      `json:"min_hardness"`
	MaxHardness     float64      `json:"max_hardness"`
}

// CountFor returns the count of key in entries, or 0.
func CountFor(entries []CountEntry, key string) int {
	for _, e := range entries {
		if e.Key == key {
			return e.Count
		}
	}
	return 0
}

// StorageStats summarizes the relational store.
type StorageStats struct {
	Minerals        int          `json:"minerals"`
	Localities      int          `json:"localities"`
	Links           int          `json:"links"`
	ValueCategories []CountEntry `json:"value_categories"`
}

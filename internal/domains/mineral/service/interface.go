package service

import (
	"mineral-catalog/internal/domains/mineral/model"
)

// CollectionService is the contract of the in-memory catalog. It is the
// authoritative state of the application; persistence is orchestrated by
// the presentation layer through the repository.
type CollectionService interface {
	// CRUD
	Add(fields model.Fields) model.Mineral
	AddMineral(m model.Mineral) model.Mineral
	AddAll(minerals []model.Mineral) []model.Mineral
	RemoveByID(id int) bool
	RemoveByName(name string) bool
	GetByID(id int) (model.Mineral, bool)
	All() []model.Mineral
	IDs() []int
	Size() int
	IsEmpty() bool
	Clear()

	// Search & filter
	SearchByName(query string) []model.Mineral
	SearchAllFields(query string) []model.Mineral
	FilterByClass(class string) []model.Mineral
	FilterByColor(color string) []model.Mineral
	FilterByLocation(location string) []model.Mineral
	FilterByValueCategory(category string) []model.Mineral

	// Sort
	SortByName() []model.Mineral
	SortByHardness() []model.Mineral

	// Aggregates
	Stats() model.Stats
	Classes() []string
	Locations() []string
	ValueCategories() []string
}

// ExportService renders a list of minerals into a downloadable document.
type ExportService interface {
	Export(format string, minerals []model.Mineral) (*ExportFile, error)
	Formats() []string
}

package repository

import (
	"context"

	"mineral-catalog/internal/domains/mineral/model"
)

// Repository persists the catalog into the relational store. The in-memory
// collection stays authoritative; SaveAll replaces the stored state.
type Repository interface {
	EnsureSchema(ctx context.Context) error

	LoadAll(ctx context.Context) ([]model.Mineral, error)
	SaveAll(ctx context.Context, minerals []model.Mineral) error
	AddOne(ctx context.Context, m model.Mineral) (int, error)
	DeleteOne(ctx context.Context, id int) (bool, error)

	IsEmpty(ctx context.Context) (bool, error)
	Stats(ctx context.Context) (*model.StorageStats, error)
	Localities(ctx context.Context) ([]string, error)
	ValueCategories(ctx context.Context) ([]string, error)
	Reset(ctx context.Context) error
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mineral-catalog/internal/domains/mineral/model"
	"mineral-catalog/pkg/database"
	"mineral-catalog/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL-backed repository.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const mineralColumns = `
	m.name, m.formula, m.class, m.color, m.streak_color, m.luster,
	m.hardness, m.specific_gravity, m.cleavage, m.fracture, m.genesis,
	m.application, m.additional_properties, m.interesting_facts,
	m.value_category, m.image_url`

func (r *postgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		logger.Error("EnsureSchema: database error", err)
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// ========================================
// LOAD
// ========================================

func (r *postgresRepository) LoadAll(ctx context.Context) ([]model.Mineral, error) {
	query := `
		SELECT m.id,` + mineralColumns + `,
			COALESCE(array_agg(l.name ORDER BY l.name) FILTER (WHERE l.name IS NOT NULL), '{}') AS localities
		FROM minerals m
		LEFT JOIN mineral_localities ml ON ml.mineral_id = m.id
		LEFT JOIN localities l ON l.id = ml.locality_id
		GROUP BY m.id
		ORDER BY m.name, m.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("LoadAll: query failed", err)
		return nil, fmt.Errorf("failed to load minerals: %w", err)
	}
	defer rows.Close()

	minerals := []model.Mineral{}
	for rows.Next() {
		var (
			id         int
			f          model.Fields
			localities []string
		)
		if err := rows.Scan(
			&id,
			&f.Name, &f.Formula, &f.Class, &f.Color, &f.StreakColor, &f.Luster,
			&f.Hardness, &f.SpecificGravity, &f.Cleavage, &f.Fracture, &f.Genesis,
			&f.Application, &f.AdditionalProperties, &f.InterestingFacts,
			&f.ValueCategory, &f.ImageURL,
			&localities,
		); err != nil {
			logger.Error("LoadAll: scan failed", err)
			return nil, fmt.Errorf("failed to scan mineral: %w", err)
		}
		f.Location = JoinLocalities(localities)
		minerals = append(minerals, model.NewMineral(id, f))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate minerals: %w", err)
	}

	return minerals, nil
}

// ========================================
// SAVE
// ========================================

// SaveAll replaces the stored catalog with minerals inside one transaction.
// An empty slice leaves the store untouched.
func (r *postgresRepository) SaveAll(ctx context.Context, minerals []model.Mineral) error {
	if len(minerals) == 0 {
		logger.Warn("SaveAll: nothing to save, storage left untouched", nil)
		return nil
	}

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM mineral_localities`,
			`DELETE FROM minerals`,
			`DELETE FROM localities`,
		} {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to clear tables: %w", err)
			}
		}

		localityIDs := map[string]int{}
		for _, m := range minerals {
			if _, err := insertMineral(ctx, tx, m, localityIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("SaveAll: transaction failed", err)
		return err
	}

	logger.Info("Catalog saved", map[string]interface{}{
		"minerals": len(minerals),
	})
	return nil
}

func (r *postgresRepository) AddOne(ctx context.Context, m model.Mineral) (int, error) {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int, error) {
		return insertMineral(ctx, tx, m, map[string]int{})
	})
	if err != nil {
		logger.Error("AddOne: transaction failed", err)
		return 0, err
	}
	return id, nil
}

// insertMineral stores one row and links its localities. localityIDs caches
// ids already resolved in the current transaction.
func insertMineral(ctx context.Context, tx pgx.Tx, m model.Mineral, localityIDs map[string]int) (int, error) {
	const query = `
		INSERT INTO minerals (
			name, formula, class, color, streak_color, luster,
			hardness, specific_gravity, cleavage, fracture, genesis,
			application, additional_properties, interesting_facts,
			value_category, image_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	var id int
	err := tx.QueryRow(ctx, query,
		m.Name, m.Formula, m.Class, m.Color, m.StreakColor, m.Luster,
		m.Hardness, m.SpecificGravity, m.Cleavage, m.Fracture, m.Genesis,
		m.Application, m.AdditionalProperties, m.InterestingFacts,
		m.ValueCategory, m.ImageURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert mineral %q: %w", m.Name, err)
	}

	batch := &pgx.Batch{}
	for _, name := range SplitLocalities(m.Location) {
		localityID, ok := localityIDs[name]
		if !ok {
			localityID, err = findOrCreateLocality(ctx, tx, name)
			if err != nil {
				return 0, err
			}
			localityIDs[name] = localityID
		}
		batch.Queue(`
			INSERT INTO mineral_localities (mineral_id, locality_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, id, localityID)
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, fmt.Errorf("failed to link localities of %q: %w", m.Name, err)
		}
	}

	return id, nil
}

func findOrCreateLocality(ctx context.Context, tx pgx.Tx, name string) (int, error) {
	const query = `
		INSERT INTO localities (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id int
	if err := tx.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to resolve locality %q: %w", name, err)
	}
	return id, nil
}

// ========================================
// DELETE / RESET
// ========================================

func (r *postgresRepository) DeleteOne(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM minerals WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteOne: database error", err)
		return false, fmt.Errorf("failed to delete mineral %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) Reset(ctx context.Context) error {
	const query = `TRUNCATE mineral_localities, minerals, localities RESTART IDENTITY`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		logger.Error("Reset: database error", err)
		return fmt.Errorf("failed to reset storage: %w", err)
	}
	return nil
}

// ========================================
// QUERIES
// ========================================

func (r *postgresRepository) IsEmpty(ctx context.Context) (bool, error) {
	var empty bool
	err := r.pool.QueryRow(ctx, `SELECT NOT EXISTS (SELECT 1 FROM minerals)`).Scan(&empty)
	if err != nil {
		return false, fmt.Errorf("failed to check storage: %w", err)
	}
	return empty, nil
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.StorageStats, error) {
	const countsQuery = `
		SELECT
			(SELECT COUNT(*) FROM minerals),
			(SELECT COUNT(*) FROM localities),
			(SELECT COUNT(*) FROM mineral_localities)
	`
	stats := &model.StorageStats{}
	if err := r.pool.QueryRow(ctx, countsQuery).Scan(&stats.Minerals, &stats.Localities, &stats.Links); err != nil {
		logger.Error("Stats: count failed", err)
		return nil, fmt.Errorf("failed to count storage rows: %w", err)
	}

	const categoriesQuery = `
		SELECT COALESCE(NULLIF(value_category, ''), $1) AS category, COUNT(*)
		FROM minerals
		GROUP BY 1
		ORDER BY 2 DESC, 1
	`
	rows, err := r.pool.Query(ctx, categoriesQuery, model.UnspecifiedCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to count value categories: %w", err)
	}
	stats.ValueCategories, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.CountEntry, error) {
		var e model.CountEntry
		err := row.Scan(&e.Key, &e.Count)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan value categories: %w", err)
	}

	return stats, nil
}

func (r *postgresRepository) Localities(ctx context.Context) ([]string, error) {
	return r.strings(ctx, `SELECT name FROM localities ORDER BY name`)
}

func (r *postgresRepository) ValueCategories(ctx context.Context) ([]string, error) {
	return r.strings(ctx, `
		SELECT DISTINCT value_category FROM minerals
		WHERE value_category <> ''
		ORDER BY value_category
	`)
}

func (r *postgresRepository) strings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return out, nil
}

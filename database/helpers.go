package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Pagination represents pagination parameters
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// PaginationResult wraps paginated data with metadata
type PaginationResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Paginate applies pagination to a query builder and returns results with metadata
func Paginate[T any](q *QueryBuilder[T], ctx context.Context, page, pageSize int) (*PaginationResult[T], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100 // Max page size
	}

	// Get total count
	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	// Calculate offset
	offset := (page - 1) * pageSize

	// Get paginated data
	data, err := q.Limit(pageSize).Offset(offset).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get paginated data: %w", err)
	}

	return &PaginationResult[T]{
		Data: data,
		Pagination: Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}

// FindByID is a helper to find a record by ID
func FindByID[T any](db *DB, ctx context.Context, id any) (*T, error) {
	return Query[T](db).Where("id", id).First(ctx)
}

// Create is a helper to insert a single record
func Create[T any](db *DB, ctx context.Context, data *T) (*T, error) {
	return Query[T](db).Insert(ctx, data)
}

// CreateMany is a helper to insert multiple records
func CreateMany[T any](db *DB, ctx context.Context, data []T) ([]T, error) {
	return Query[T](db).InsertMany(ctx, data)
}

// DeleteByID is a helper to delete a record by ID
func DeleteByID[T any](db *DB, ctx context.Context, id any) (int, error) {
	return Query[T](db).Where("id", id).Delete(ctx)
}

// BulkUpsert performs bulk INSERT ... ON CONFLICT DO UPDATE keyed on
// conflictColumn, updating updateColumns from the excluded row. With no
// update columns the conflict is ignored (DO NOTHING). Inserted/updated rows
// are scanned back into data, so generated ids are available afterwards.
func BulkUpsert[T any](db *DB, ctx context.Context, data []T, conflictColumn string, updateColumns ...string) ([]T, error) {
	start := time.Now()

	if len(data) == 0 {
		return data, nil
	}

	query := db.NewInsert().Model(&data)

	if len(updateColumns) > 0 {
		sets := make([]string, 0, len(updateColumns))
		for _, col := range updateColumns {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
		query = query.On(fmt.Sprintf("CONFLICT (%s) DO UPDATE", conflictColumn)).
			Set(strings.Join(sets, ", "))
	} else {
		query = query.On(fmt.Sprintf("CONFLICT (%s) DO NOTHING", conflictColumn))
	}

	err := WithRetry(ctx, func() error {
		_, err := query.Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk upsert: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Transaction executes a function within a database transaction
func Transaction(db *DB, ctx context.Context, fn func(tx bun.Tx) error) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(tx)
	})
}

// Chunk executes a callback for each chunk of results
func Chunk[T any](ctx context.Context, query *QueryBuilder[T], chunkSize int, fn func([]T, int) error) error {
	if chunkSize < 1 {
		chunkSize = 100
	}

	offset := 0
	chunkNumber := 0

	for {
		chunk, err := query.Limit(chunkSize).Offset(offset).All(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch chunk at offset %d: %w", offset, err)
		}

		if len(chunk) == 0 {
			break
		}

		if err := fn(chunk, chunkNumber); err != nil {
			return fmt.Errorf("chunk processing failed at chunk %d: %w", chunkNumber, err)
		}

		if len(chunk) < chunkSize {
			break
		}

		offset += chunkSize
		chunkNumber++
	}

	return nil
}

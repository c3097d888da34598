package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	model "productivity-tracker.com/productivity-tracker/internal/models"
)

// Row is one result row of a read statement. Columns keeps the statement's column order.
type Row struct {
	Columns []string
	Values  map[string]any
}

func (r Row) Get(column string) any {
	return r.Values[column]
}

// Gateway executes parameterized statements against the relational store.
type Gateway struct {
	db *gorm.DB
}

func NewGateway(db *gorm.DB) (*Gateway, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; one connection keeps in-memory databases alive too.
	sqlDB.SetMaxOpenConns(1)

	return &Gateway{db: db}, nil
}

// Ensure creates missing tables and indexes. It never drops or rewrites existing data.
func (g *Gateway) Ensure() error {
	err := g.db.AutoMigrate(
		&model.Task{},
		&model.TimeSession{},
		&model.Habit{},
		&model.HabitCompletion{},
	)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (g *Gateway) DB(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

func (g *Gateway) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

func (g *Gateway) Query(ctx context.Context, statement string, args ...any) ([]Row, error) {
	rows, err := g.db.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("query scan: %w", err)
		}

		row := Row{Columns: columns, Values: make(map[string]any, len(columns))}
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row.Values[col] = string(b)
				continue
			}
			row.Values[col] = values[i]
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// Exec runs a write statement. Inserts return the generated identifier,
// anything else returns the number of affected rows.
func (g *Gateway) Exec(ctx context.Context, statement string, args ...any) (int64, error) {
	res, err := g.db.WithContext(ctx).Statement.ConnPool.ExecContext(ctx, statement, args...)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}

	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(statement)), "INSERT") {
		return res.LastInsertId()
	}
	return res.RowsAffected()
}

func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

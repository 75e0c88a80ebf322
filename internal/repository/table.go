package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"adops/internal/pkg/apperr"
)

var columnName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type Op string

const (
	OpEq     Op = "="
	OpNotEq  Op = "<>"
	OpGTE    Op = ">="
	OpLTE    Op = "<="
	OpIn     Op = "IN"
	OpIsNull Op = "IS NULL"
	// OpFold compares LOWER(TRIM(column)) with the lower-cased, trimmed value.
	OpFold Op = "FOLD"
)

type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, v any) Filter      { return Filter{Column: column, Op: OpEq, Value: v} }
func NotEq(column string, v any) Filter   { return Filter{Column: column, Op: OpNotEq, Value: v} }
func In(column string, v any) Filter      { return Filter{Column: column, Op: OpIn, Value: v} }
func IsNull(column string) Filter         { return Filter{Column: column, Op: OpIsNull} }
func Fold(column string, v string) Filter { return Filter{Column: column, Op: OpFold, Value: v} }
func GTE(column string, v any) Filter     { return Filter{Column: column, Op: OpGTE, Value: v} }
func LTE(column string, v any) Filter     { return Filter{Column: column, Op: OpLTE, Value: v} }

type Query struct {
	Filters  []Filter
	Order    string
	Limit    int
	Offset   int
	Preload  []string
	Unscoped bool
}

// Table exposes the store primitives the services rely on: select, insert,
// update and delete with filter predicates. Each call commits on its own.
type Table[T any] struct {
	db   *gorm.DB
	name string
}

func NewTable[T any](db *gorm.DB, name string) *Table[T] {
	return &Table[T]{db: db, name: name}
}

func (t *Table[T]) DB() *gorm.DB {
	return t.db
}

func (t *Table[T]) Select(ctx context.Context, q Query) ([]T, error) {
	tx := t.db.WithContext(ctx).Model(new(T))
	if q.Unscoped {
		tx = tx.Unscoped()
	}
	tx, err := applyFilters(tx, q.Filters)
	if err != nil {
		return nil, err
	}
	for _, rel := range q.Preload {
		tx = tx.Preload(rel)
	}
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, apperr.Store("select "+t.name, err)
	}
	return rows, nil
}

// First returns the first row matching filters or a NotFoundError.
func (t *Table[T]) First(ctx context.Context, q Query) (*T, error) {
	q.Limit = 1
	rows, err := t.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound(t.name, describe(q.Filters))
	}
	return &rows[0], nil
}

func (t *Table[T]) Insert(ctx context.Context, rec *T) error {
	if err := t.db.WithContext(ctx).Create(rec).Error; err != nil {
		return apperr.Store("insert "+t.name, err)
	}
	return nil
}

// Update applies patch to every row matching filters and returns the number of
// rows touched. An empty filter list is refused.
func (t *Table[T]) Update(ctx context.Context, filters []Filter, patch map[string]any) (int64, error) {
	if len(filters) == 0 {
		return 0, fmt.Errorf("update %s: refusing unfiltered update", t.name)
	}
	tx, err := applyFilters(t.db.WithContext(ctx).Model(new(T)), filters)
	if err != nil {
		return 0, err
	}
	res := tx.Updates(patch)
	if res.Error != nil {
		return 0, apperr.Store("update "+t.name, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes rows matching filters. Models with gorm.DeletedAt are soft
// deleted. An empty filter list is refused.
func (t *Table[T]) Delete(ctx context.Context, filters ...Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, fmt.Errorf("delete %s: refusing unfiltered delete", t.name)
	}
	tx, err := applyFilters(t.db.WithContext(ctx), filters)
	if err != nil {
		return 0, err
	}
	res := tx.Delete(new(T))
	if res.Error != nil {
		return 0, apperr.Store("delete "+t.name, res.Error)
	}
	return res.RowsAffected, nil
}

func applyFilters(tx *gorm.DB, filters []Filter) (*gorm.DB, error) {
	for _, f := range filters {
		if !columnName.MatchString(f.Column) {
			return nil, fmt.Errorf("invalid filter column %q", f.Column)
		}
		switch f.Op {
		case OpEq, OpNotEq, OpGTE, OpLTE:
			tx = tx.Where(fmt.Sprintf("%s %s ?", f.Column, f.Op), f.Value)
		case OpIn:
			tx = tx.Where(fmt.Sprintf("%s IN ?", f.Column), f.Value)
		case OpIsNull:
			tx = tx.Where(fmt.Sprintf("%s IS NULL", f.Column))
		case OpFold:
			s, _ := f.Value.(string)
			tx = tx.Where(fmt.Sprintf("LOWER(TRIM(%s)) = ?", f.Column), strings.ToLower(strings.TrimSpace(s)))
		default:
			return nil, fmt.Errorf("unsupported filter op %q", f.Op)
		}
	}
	return tx, nil
}

func describe(filters []Filter) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if f.Op == OpIsNull {
			parts = append(parts, f.Column+" is null")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", f.Column, f.Value))
	}
	return strings.Join(parts, ",")
}

// IsUniqueViolation reports whether err comes from a unique constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"muhasebe-api/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// table maps a domain type onto a PostgreSQL table. columns[0] is the
// primary key and values/targets follow the column order.
type table[T any] struct {
	name       string
	columns    []string
	fields     map[string]string // Filter.Eq field -> column
	dateColumn string            // empty if the table cannot be date filtered
	orderBy    string
	values     func(*T) []any
	targets    func(*T) []any
}

func (t table[T]) selectList() string {
	return strings.Join(t.columns, ", ")
}

// RecordRepo implements ports.RecordRepository for one table.
type RecordRepo[T any] struct {
	pool Pool
	t    table[T]
}

func newRecordRepo[T any](pool Pool, t table[T]) *RecordRepo[T] {
	return &RecordRepo[T]{pool: pool, t: t}
}

// Create inserts rec.
func (r *RecordRepo[T]) Create(ctx context.Context, rec *T) error {
	placeholders := make([]string, len(r.t.columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.t.name, r.t.selectList(), strings.Join(placeholders, ", "))

	if _, err := r.pool.Exec(ctx, query, r.t.values(rec)...); err != nil {
		return fmt.Errorf("insert into %s: %w", r.t.name, err)
	}
	return nil
}

// GetByID fetches a record by primary key. Returns (nil, nil) if absent.
func (r *RecordRepo[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.getBy(ctx, r.t.columns[0], id)
}

func (r *RecordRepo[T]) getBy(ctx context.Context, column string, value any) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", r.t.selectList(), r.t.name, column)

	rec := new(T)
	if err := r.pool.QueryRow(ctx, query, value).Scan(r.t.targets(rec)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s by %s: %w", r.t.name, column, err)
	}
	return rec, nil
}

// List returns one page of matches and the total match count.
func (r *RecordRepo[T]) List(ctx context.Context, filter ports.Filter, page ports.Page) ([]T, int64, error) {
	where, args, err := buildWhere(r.t.name, r.t.fields, r.t.dateColumn, filter)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", r.t.name, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.t.name, err)
	}

	query, args := paginate(fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s",
		r.t.selectList(), r.t.name, where, r.t.orderBy), args, page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", r.t.name, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var rec T
		if err := rows.Scan(r.t.targets(&rec)...); err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", r.t.name, err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate %s: %w", r.t.name, err)
	}

	return items, total, nil
}

// Replace overwrites every non-key column of the row with rec's id.
func (r *RecordRepo[T]) Replace(ctx context.Context, rec *T) (bool, error) {
	sets := make([]string, 0, len(r.t.columns)-1)
	for i, col := range r.t.columns[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1",
		r.t.name, strings.Join(sets, ", "), r.t.columns[0])

	tag, err := r.pool.Exec(ctx, query, r.t.values(rec)...)
	if err != nil {
		return false, fmt.Errorf("update %s: %w", r.t.name, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the row with the given id.
func (r *RecordRepo[T]) Delete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.t.name, r.t.columns[0])

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", r.t.name, err)
	}
	return tag.RowsAffected() > 0, nil
}

// buildWhere renders filter as a WHERE clause with positional arguments.
// Equality fields are emitted in sorted order so the SQL is stable.
func buildWhere(tableName string, fields map[string]string, dateColumn string, filter ports.Filter) (string, []any, error) {
	var (
		conds []string
		args  []any
	)

	keys := make([]string, 0, len(filter.Eq))
	for k := range filter.Eq {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		col, ok := fields[k]
		if !ok {
			return "", nil, fmt.Errorf("%s: unknown filter field %q", tableName, k)
		}
		args = append(args, filter.Eq[k])
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if filter.HasDate() {
		if dateColumn == "" {
			return "", nil, fmt.Errorf("%s: table has no date column", tableName)
		}
		if filter.After != nil {
			args = append(args, *filter.After)
			conds = append(conds, fmt.Sprintf("%s > $%d", dateColumn, len(args)))
		}
		if filter.Since != nil {
			args = append(args, *filter.Since)
			conds = append(conds, fmt.Sprintf("%s >= $%d", dateColumn, len(args)))
		}
		if filter.Before != nil {
			args = append(args, *filter.Before)
			conds = append(conds, fmt.Sprintf("%s < $%d", dateColumn, len(args)))
		}
	}

	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func paginate(query string, args []any, page ports.Page) (string, []any) {
	if page.Unbounded() {
		return query, args
	}
	args = append(args, page.PageSize, page.Offset())
	return fmt.Sprintf("%s LIMIT $%d OFFSET $%d", query, len(args)-1, len(args)), args
}

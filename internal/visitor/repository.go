package visitor

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Insert(ctx context.Context, direction Direction, at time.Time) (*Log, error)

	// CountByWindows returns one Tally per window, in the order given.
	CountByWindows(ctx context.Context, windows []Window) ([]Tally, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Insert(ctx context.Context, direction Direction, at time.Time) (*Log, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.visitor_logs").
		Columns("direction", "timestamp").
		Values(direction, at).
		Suffix("RETURNING id, timestamp").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert visitor log query failed: %w", err)
	}

	l := &Log{Direction: direction}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&l.ID, &l.Timestamp); err != nil {
		return nil, fmt.Errorf("insert visitor log failed: %w", err)
	}
	return l, nil
}

// $1 and $2 are parallel arrays of window starts and ends. Every window yields
// exactly one row, zero when no pulse falls inside it.
const countByWindowsSQL = `
SELECT
    count(v.id) FILTER (WHERE v.direction = 'in')  AS in_count,
    count(v.id) FILTER (WHERE v.direction = 'out') AS out_count
FROM unnest($1::timestamptz[], $2::timestamptz[]) WITH ORDINALITY AS w(window_start, window_end, ord)
LEFT JOIN public.visitor_logs v
       ON v.timestamp >= w.window_start AND v.timestamp < w.window_end
GROUP BY w.ord
ORDER BY w.ord`

func (r *pgxRepository) CountByWindows(ctx context.Context, windows []Window) ([]Tally, error) {
	if len(windows) == 0 {
		return nil, nil
	}

	starts := make([]time.Time, len(windows))
	ends := make([]time.Time, len(windows))
	for i, w := range windows {
		starts[i] = w.Start
		ends[i] = w.End
	}

	rows, err := r.pool.Query(ctx, countByWindowsSQL, starts, ends)
	if err != nil {
		return nil, fmt.Errorf("count visitor logs failed: %w", err)
	}
	defer rows.Close()

	tallies := make([]Tally, 0, len(windows))
	for rows.Next() {
		var t Tally
		if err := rows.Scan(&t.In, &t.Out); err != nil {
			return nil, fmt.Errorf("scan visitor tally failed: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visitor tallies failed: %w", err)
	}
	if len(tallies) != len(windows) {
		return nil, fmt.Errorf("count visitor logs: got %d tallies for %d windows", len(tallies), len(windows))
	}
	return tallies, nil
}

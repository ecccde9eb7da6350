package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	ListByStatuses(ctx context.Context, statuses []Status) ([]*Reservation, error)

	// UpdateStatus moves a reservation from one status to another and stores reason.
	// Nothing is written unless the row still holds from; the result reports whether it did.
	UpdateStatus(ctx context.Context, id string, from, to Status, reason string) (bool, error)

	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var selectColumns = []string{
	"r.id", "r.user_id", "u.username", "r.pic_name", "r.description",
	"to_char(r.reservation_date, 'YYYY-MM-DD')",
	"to_char(r.start_time, 'HH24:MI')",
	"to_char(r.end_time, 'HH24:MI')",
	"r.status", "r.rejection_reason", "r.created_at", "r.updated_at",
}

func scanReservation(row pgx.Row, extra ...any) (*Reservation, error) {
	var r Reservation
	dest := append([]any{
		&r.ID, &r.UserID, &r.UserName, &r.PICName, &r.Description,
		&r.Date, &r.StartTime, &r.EndTime,
		&r.Status, &r.RejectionReason, &r.CreatedAt, &r.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &r, nil
}

func baseSelect(extra ...string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := make([]string, 0, len(selectColumns)+len(extra))
	cols = append(cols, selectColumns...)
	cols = append(cols, extra...)
	return psql.Select(cols...).
		From("public.reservations r").
		Join("public.users u ON r.user_id = u.id")
}

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservations").
		Columns("user_id", "pic_name", "description", "reservation_date", "start_time", "end_time", "status", "rejection_reason").
		Values(
			res.UserID, res.PICName, res.Description,
			squirrel.Expr("?::date", res.Date),
			squirrel.Expr("?::time", res.StartTime),
			squirrel.Expr("?::time", res.EndTime),
			res.Status, res.RejectionReason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrRequesterNotFound
		}
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query, args, err := baseSelect().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	query := baseSelect("count(*) OVER() AS total_count")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"r.user_id": filter.UserID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"r.status": filter.Status})
	}
	if filter.DateFrom != "" {
		query = query.Where("r.reservation_date >= ?::date", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("r.reservation_date <= ?::date", filter.DateTo)
	}

	orderDir := "DESC"
	if filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}
	switch filter.SortBy {
	case "created_at":
		query = query.OrderBy("r.created_at " + orderDir)
	case "status":
		query = query.OrderBy("r.status "+orderDir, "r.reservation_date "+orderDir)
	default:
		query = query.OrderBy("r.reservation_date "+orderDir, "r.start_time "+orderDir)
	}

	if filter.PageSize > 0 {
		if filter.Page < 1 {
			filter.Page = 1
		}
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var list []*Reservation
	var total int
	for rows.Next() {
		res, err := scanReservation(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservations failed: %w", err)
	}

	return list, total, nil
}

func (r *pgxRepository) ListByStatuses(ctx context.Context, statuses []Status) ([]*Reservation, error) {
	query, args, err := baseSelect().
		Where(squirrel.Eq{"r.status": statusStrings(statuses)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reservations by status query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations by status failed: %w", err)
	}
	defer rows.Close()

	var list []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations failed: %w", err)
	}
	return list, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status, reason string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("status", to).
		Set("rejection_reason", reason).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update reservation status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update reservation status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("status", "count(*)").
		From("public.reservations").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count reservations failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int, len(AllStatuses))
	for _, st := range AllStatuses {
		counts[st] = 0
	}
	for rows.Next() {
		var st Status
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan reservation count failed: %w", err)
		}
		counts[st] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation counts failed: %w", err)
	}
	return counts, nil
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

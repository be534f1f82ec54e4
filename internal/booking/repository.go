package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing booking data.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)

	// ListByBooker and ListByOwner answer the state-bucket listings,
	// scoped to the renter and the item owner respectively.
	ListByBooker(ctx context.Context, bookerID int64, state State, now time.Time, from, size int) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state State, now time.Time, from, size int) ([]*Booking, error)

	// UpdateStatusFromWaiting sets the status only if the booking is
	// still WAITING. Returns false when the row was already resolved.
	UpdateStatusFromWaiting(ctx context.Context, id int64, status Status) (bool, error)

	// LastApproved / NextApproved return the approved booking around
	// "now" for an item, or nil when there is none.
	LastApproved(ctx context.Context, itemID int64, now time.Time) (*Booking, error)
	NextApproved(ctx context.Context, itemID int64, now time.Time) (*Booking, error)

	// HasFinished reports whether the booker has a booking on the item
	// that already ended.
	HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const bookingColumns = "b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.name, " +
	"b.start_date, b.end_date, b.status"

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("bookings").
		Columns("item_id", "booker_id", "start_date", "end_date", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := baseSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID int64, state State, now time.Time, from, size int) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"b.booker_id": bookerID}, state, now, from, size)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, state State, now time.Time, from, size int) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"i.owner_id": ownerID}, state, now, from, size)
}

// list applies the scope predicate plus the bucket's (predicate, ordering)
// pair and the (offset, size) window.
func (r *pgxRepository) list(ctx context.Context, scope squirrel.Sqlizer, state State, now time.Time, from, size int) ([]*Booking, error) {
	bk, ok := buckets[state]
	if !ok {
		return nil, ErrUnknownState(string(state))
	}

	q := baseSelect().Where(scope)
	if bk.where != nil {
		q = q.Where(bk.where(now))
	}
	q = q.OrderBy(bk.orderBy).
		Limit(uint64(size)).
		Offset(uint64(from))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) UpdateStatusFromWaiting(ctx context.Context, id int64, status Status) (bool, error) {
	// Compare-and-swap on status so concurrent approvals cannot both win.
	query, args, err := psql.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id, "status": StatusWaiting}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) LastApproved(ctx context.Context, itemID int64, now time.Time) (*Booking, error) {
	return r.firstApproved(ctx,
		squirrel.And{
			squirrel.Eq{"b.item_id": itemID, "b.status": StatusApproved},
			squirrel.Lt{"b.start_date": now},
		},
		"b.end_date DESC")
}

func (r *pgxRepository) NextApproved(ctx context.Context, itemID int64, now time.Time) (*Booking, error) {
	return r.firstApproved(ctx,
		squirrel.And{
			squirrel.Eq{"b.item_id": itemID, "b.status": StatusApproved},
			squirrel.Gt{"b.start_date": now},
		},
		"b.start_date ASC")
}

func (r *pgxRepository) firstApproved(ctx context.Context, where squirrel.Sqlizer, orderBy string) (*Booking, error) {
	query, args, err := baseSelect().
		Where(where).
		OrderBy(orderBy).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approved booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approved booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	sub, args, err := psql.Select("1").
		From("bookings b").
		Where(squirrel.Eq{"b.booker_id": bookerID, "b.item_id": itemID}).
		Where(squirrel.Lt{"b.end_date": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build finished booking query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}
	return exists, nil
}

func baseSelect() squirrel.SelectBuilder {
	return psql.Select(bookingColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

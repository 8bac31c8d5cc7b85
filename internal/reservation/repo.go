package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
)

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

const selectColumns = `id,property_id,guest_name,check_in_at,check_out_at,status,created_at`

func (r *Repo) Create(ctx context.Context, res Reservation) error {
	if err := res.Validate(); err != nil {
		return err
	}
	return db.WrapNotFound(r.db.Exec(ctx, `
INSERT INTO reservations(`+selectColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		res.ID, res.PropertyID, res.GuestName, res.CheckInAt, res.CheckOutAt, string(res.Status), res.CreatedAt,
	))
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, `
SELECT `+selectColumns+`
FROM reservations
WHERE id=$1`, id))
	if err != nil {
		return Reservation{}, db.WrapNotFound(err)
	}
	return res, nil
}

func (r *Repo) ListOverlapping(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]Reservation, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+selectColumns+`
FROM reservations
WHERE property_id=$1
  AND status <> 'cancelled'
  AND check_in_at < $3
  AND check_out_at >= $2
ORDER BY check_in_at ASC`, propertyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanReservation(row db.Row) (Reservation, error) {
	var res Reservation
	var status string
	if err := row.Scan(&res.ID, &res.PropertyID, &res.GuestName, &res.CheckInAt, &res.CheckOutAt, &status, &res.CreatedAt); err != nil {
		return Reservation{}, err
	}
	res.Status = Status(status)
	res.CheckInAt = res.CheckInAt.UTC()
	res.CheckOutAt = res.CheckOutAt.UTC()
	return res, nil
}

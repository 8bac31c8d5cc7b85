package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
)

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func (r *Repo) LastClosed(ctx context.Context, propertyID uuid.UUID) (opday.Date, bool, error) {
	return scanLastClosed(r.db.QueryRow(ctx, `SELECT max(business_date) FROM day_closures WHERE property_id=$1`, propertyID))
}

func (r *Repo) Close(ctx context.Context, c Closure) error {
	return db.WrapNotFound(r.db.Exec(ctx, `
INSERT INTO day_closures(property_id,business_date,closed_at,arrivals,departures,in_house)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (property_id,business_date) DO NOTHING`,
		c.PropertyID, dateParam(c.Date), c.ClosedAt, c.Arrivals, c.Departures, c.InHouse,
	))
}

func (r *Repo) List(ctx context.Context, propertyID uuid.UUID, limit int) ([]Closure, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.Query(ctx, `
SELECT property_id,business_date,closed_at,arrivals,departures,in_house
FROM day_closures
WHERE property_id=$1
ORDER BY business_date DESC
LIMIT $2`, propertyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Closure
	for rows.Next() {
		c, err := scanClosure(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// dateParam encodes d for a DATE column. pgx sends the UTC calendar date.
func dateParam(d opday.Date) time.Time {
	return d.At(0, 0, 0, 0, time.UTC)
}

func scanClosure(row db.Row) (Closure, error) {
	var c Closure
	var date time.Time
	if err := row.Scan(&c.PropertyID, &date, &c.ClosedAt, &c.Arrivals, &c.Departures, &c.InHouse); err != nil {
		return Closure{}, err
	}
	c.Date = opday.DateOf(date.UTC())
	c.ClosedAt = c.ClosedAt.UTC()
	return c, nil
}

func scanLastClosed(row db.Row) (opday.Date, bool, error) {
	var last *time.Time
	if err := row.Scan(&last); err != nil {
		return opday.Date{}, false, db.WrapNotFound(err)
	}
	if last == nil {
		return opday.Date{}, false, nil
	}
	return opday.DateOf(last.UTC()), true, nil
}

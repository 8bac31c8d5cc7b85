package property

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
)

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func (r *Repo) Create(ctx context.Context, p Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return db.WrapNotFound(r.db.Exec(ctx, `
INSERT INTO properties(id,name,timezone,created_at,updated_at)
VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Name, p.Timezone, p.CreatedAt, p.UpdatedAt,
	))
}

const selectColumns = `id,name,timezone,created_at,updated_at`

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (Property, error) {
	p, err := scanProperty(r.db.QueryRow(ctx, `
SELECT `+selectColumns+`
FROM properties
WHERE id=$1`, id))
	if err != nil {
		return Property{}, db.WrapNotFound(err)
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context) ([]Property, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+selectColumns+`
FROM properties
ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateTimezone changes where the property's operational days begin. The
// row is locked while the new zone is validated. Already-closed audit days
// are not recomputed.
func (r *Repo) UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) error {
	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		p, err := scanProperty(tx.QueryRow(ctx, `
SELECT `+selectColumns+`
FROM properties
WHERE id=$1
FOR UPDATE`, id))
		if err != nil {
			return db.WrapNotFound(err)
		}
		p.Timezone = strings.TrimSpace(timezone)
		if err := p.Validate(); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE properties SET timezone=$2, updated_at=$3 WHERE id=$1`, id, p.Timezone, time.Now().UTC())
		return db.WrapNotFound(err)
	})
}

func scanProperty(row db.Row) (Property, error) {
	var p Property
	if err := row.Scan(&p.ID, &p.Name, &p.Timezone, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Property{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound marks a lookup for a profile that does not exist
var ErrNotFound = errors.New("profile not found")

// Repository persists natal profiles in PostgreSQL
// ⭐ SSOT: 프로필 저장소는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new profile repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new profile, assigning its ID and timestamps
func (r *Repository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (id, name, birth_date, birth_time, lat, lon, utc_offset, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.BirthDate, p.BirthTime,
		p.Location.Lat, p.Location.Lon, p.Location.UTCOffset,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves one profile
func (r *Repository) GetByID(ctx context.Context, id string) (*Profile, error) {
	query := `
		SELECT id, name, birth_date, birth_time, lat, lon, utc_offset, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var p Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.BirthDate, &p.BirthTime,
		&p.Location.Lat, &p.Location.Lon, &p.Location.UTCOffset,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all profiles, most recently created first
func (r *Repository) List(ctx context.Context) ([]*Profile, error) {
	query := `
		SELECT id, name, birth_date, birth_time, lat, lon, utc_offset, created_at, updated_at
		FROM profiles
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(
			&p.ID, &p.Name, &p.BirthDate, &p.BirthTime,
			&p.Location.Lat, &p.Location.Lon, &p.Location.UTCOffset,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

// Update rewrites a profile's mutable fields
func (r *Repository) Update(ctx context.Context, p *Profile) error {
	query := `
		UPDATE profiles
		SET name = $2, birth_date = $3, birth_time = $4, lat = $5, lon = $6, utc_offset = $7, updated_at = $8
		WHERE id = $1
	`

	p.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.BirthDate, p.BirthTime,
		p.Location.Lat, p.Location.Lon, p.Location.UTCOffset,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a profile
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/place-service/internal/domain"
	"github.com/place-service/internal/domain/repository"
	"github.com/place-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type placeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// placeRow is the scan target for the places table. Coordinates are
// stored as lon/lat columns plus a geography point for spherical
// queries; the canonical (longitude, latitude) GeoPoint is rebuilt on
// the way out.
type placeRow struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	Category   string         `db:"category"`
	Lon        float64        `db:"lon"`
	Lat        float64        `db:"lat"`
	ExternalID sql.NullString `db:"external_id"`
	Distance   sql.NullFloat64
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r placeRow) toDomain() *domain.Place {
	p := &domain.Place{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		Location:  domain.NewGeoPoint(r.Lon, r.Lat),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.ExternalID.Valid {
		externalID := r.ExternalID.String
		p.ExternalID = &externalID
	}
	if r.Distance.Valid {
		distance := r.Distance.Float64
		p.Distance = &distance
	}
	return p
}

const placeColumns = `id, name, category, lon, lat, external_id, created_at, updated_at`

func (r *placeRepository) Create(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	query := `
		INSERT INTO places (id, name, category, lon, lat, geom, external_id)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography, $6)
		RETURNING ` + placeColumns

	id := uuid.NewString()

	var row placeRow
	err := r.db.QueryRowxContext(ctx, query,
		id, place.Name, place.Category,
		place.Location.Lon(), place.Location.Lat(),
		place.ExternalID,
	).StructScan(&row)
	if err != nil {
		r.logger.Error("Failed to create place", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *placeRepository) GetAll(ctx context.Context) ([]*domain.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places ORDER BY created_at`

	var rows []placeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("Failed to get places", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	places := make([]*domain.Place, 0, len(rows))
	for _, row := range rows {
		places = append(places, row.toDomain())
	}
	return places, nil
}

func (r *placeRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`

	var row placeRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *placeRepository) Update(ctx context.Context, place *domain.Place) error {
	query := `
		UPDATE places
		SET name = $2,
		    category = $3,
		    lon = $4,
		    lat = $5,
		    geom = ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography,
		    updated_at = now()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		place.ID, place.Name, place.Category,
		place.Location.Lon(), place.Location.Lat(),
	)
	if err != nil {
		r.logger.Error("Failed to update place", zap.String("id", place.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrPlaceNotFound
	}
	return nil
}

func (r *placeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete place", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrPlaceNotFound
	}
	return nil
}

func (r *placeRepository) GetNearby(
	ctx context.Context,
	center domain.GeoPoint,
	radiusMeters float64,
	categories []string,
	limit int,
) ([]*domain.Place, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT ` + placeColumns + `,
			ST_Distance(places.geom, point.geom) AS distance
		FROM places, point
		WHERE ST_DWithin(places.geom, point.geom, $3)
	`

	args := []interface{}{center.Lon(), center.Lat(), radiusMeters}
	argIdx := 4

	if len(categories) > 0 {
		query += fmt.Sprintf(" AND category = ANY($%d)", argIdx)
		args = append(args, pq.Array(categories))
		argIdx++
	}

	query += " ORDER BY distance"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to get nearby places", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var places []*domain.Place
	for rows.Next() {
		var row placeRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Category, &row.Lon, &row.Lat,
			&row.ExternalID, &row.CreatedAt, &row.UpdatedAt, &row.Distance,
		); err != nil {
			r.logger.Error("Failed to scan place", zap.Error(err))
			continue
		}
		places = append(places, row.toDomain())
	}

	return places, nil
}

func (r *placeRepository) GetWithDistance(
	ctx context.Context,
	id string,
	from domain.GeoPoint,
) (*domain.Place, error) {
	query := `
		SELECT ` + placeColumns + `,
			ST_Distance(geom, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography) AS distance
		FROM places
		WHERE id = $1
	`

	var row placeRow
	err := r.db.QueryRowxContext(ctx, query, id, from.Lon(), from.Lat()).Scan(
		&row.ID, &row.Name, &row.Category, &row.Lon, &row.Lat,
		&row.ExternalID, &row.CreatedAt, &row.UpdatedAt, &row.Distance,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place with distance", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

// UpsertExternal inserts or fully replaces the record matching the
// external ID. The unique constraint on external_id guarantees a
// fetched record can never be duplicated.
func (r *placeRepository) UpsertExternal(
	ctx context.Context,
	place *domain.Place,
	syncedAt time.Time,
) error {
	if place.ExternalID == nil || *place.ExternalID == "" {
		return fmt.Errorf("external id is required for upsert")
	}

	query := `
		INSERT INTO places (id, name, category, lon, lat, geom, external_id, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography, $6, $7)
		ON CONFLICT (external_id) DO UPDATE
		SET name = EXCLUDED.name,
		    category = EXCLUDED.category,
		    lon = EXCLUDED.lon,
		    lat = EXCLUDED.lat,
		    geom = EXCLUDED.geom,
		    last_synced_at = EXCLUDED.last_synced_at,
		    updated_at = now()
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.NewString(), place.Name, place.Category,
		place.Location.Lon(), place.Location.Lat(),
		*place.ExternalID, syncedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert place",
			zap.String("external_id", *place.ExternalID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

// SweepExternal removes externally-sourced records not touched by the
// current run. Locally-created records (no external_id) are never
// swept.
func (r *placeRepository) SweepExternal(ctx context.Context, syncedBefore time.Time) (int64, error) {
	query := `
		DELETE FROM places
		WHERE external_id IS NOT NULL
		  AND (last_synced_at IS NULL OR last_synced_at < $1)
	`

	res, err := r.db.ExecContext(ctx, query, syncedBefore)
	if err != nil {
		r.logger.Error("Failed to sweep stale places", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	swept, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}
	return swept, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/itp-onboarding/internal/domain/location"
	qb "github.com/riskibarqy/itp-onboarding/internal/platform/querybuilder"
)

type LocationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) ListBySite(ctx context.Context, site string) ([]location.Location, error) {
	query, args, err := qb.Select("id::text AS id", "itp_site", "category", "name", "address", "maps_url").
		From("itp_locations").
		Where(qb.Eq("itp_site", site)).
		OrderBy("category ASC", "name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list locations query: %w", err)
	}

	var rows []locationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list locations for site %s: %w", site, err)
	}

	out := make([]location.Location, 0, len(rows))
	for _, row := range rows {
		out = append(out, location.Location{
			ID:       row.ID,
			Site:     row.Site,
			Category: location.Category(row.Category),
			Name:     row.Name,
			Address:  row.Address,
			MapsURL:  nullableText(row.MapsURL),
		})
	}

	return out, nil
}

package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/riskibarqy/itp-onboarding/internal/domain/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationRepository_ListBySite(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(db)

	query := regexp.QuoteMeta(`SELECT id::text AS id, itp_site, category, name, address, maps_url FROM itp_locations WHERE itp_site = $1 ORDER BY category ASC, name ASC`)
	rows := sqlmock.NewRows([]string{"id", "itp_site", "category", "name", "address", "maps_url"}).
		AddRow("l-1", "Köln", "gym", "BluePIT Lövenich", "Dieselstraße 6, 50859 Köln", "https://maps.google.com/?q=Dieselstraße+6+50859+Köln").
		AddRow("l-2", "Köln", "housing", "TBD", "To be confirmed", nil)

	mock.ExpectQuery(query).WithArgs("Köln").WillReturnRows(rows)

	got, err := repo.ListBySite(context.Background(), "Köln")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, location.CategoryGym, got[0].Category)
	assert.Equal(t, "", got[1].MapsURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genneg/SwingRadar-sub000/pkg/database"
)

func TestVenuesByEventIDs(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT DISTINCT ON \(v\.event_id\)`).
		WithArgs([]string{"e1", "e2"}).
		WillReturnRows(mock.NewRows([]string{"event_id", "name", "address", "city", "country"}).
			AddRow("e1", "Casino de Madrid", "Calle de Alcala 15", "Madrid", "Spain"))

	repo := NewRelatedRepository(mock)
	venues, err := repo.VenuesByEventIDs(context.Background(), []string{"e1", "e2"})
	require.NoError(t, err)

	require.Len(t, venues, 1)
	v, ok := venues["e1"]
	require.True(t, ok)
	assert.Equal(t, "Casino de Madrid", v.Name)
	assert.Equal(t, "Madrid", v.City)

	_, ok = venues["e2"]
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenuesByEventIDs_EmptyInput(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRelatedRepository(mock)
	venues, err := repo.VenuesByEventIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, venues)

	// No query issued at all.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricesByEventIDs(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT DISTINCT ON \(p\.event_id\)`).
		WithArgs([]string{"e1"}).
		WillReturnRows(mock.NewRows([]string{"event_id", "amount", "currency", "category"}).
			AddRow("e1", float64(120), "EUR", "full pass"))

	repo := NewRelatedRepository(mock)
	prices, err := repo.PricesByEventIDs(context.Background(), []string{"e1"})
	require.NoError(t, err)

	require.Len(t, prices, 1)
	assert.Equal(t, float64(120), prices["e1"].Amount)
	assert.Equal(t, "EUR", prices["e1"].Currency)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricesByEventIDs_QueryError(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT DISTINCT ON \(p\.event_id\)`).
		WillReturnError(errors.New("connection refused"))

	repo := NewRelatedRepository(mock)
	_, err = repo.PricesByEventIDs(context.Background(), []string{"e1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query prices")
}

package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/mockuments/internal/region/store"
)

var poolQuery = regexp.QuoteMeta("SELECT region_code, kind, value FROM counterpart_pool")

func TestStore_Pools(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"region_code", "kind", "value"}
	mock.ExpectQuery(poolQuery).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("UK", "address", "1 Strand, London").
			AddRow("UK", "supplier", "Pret A Manger").
			AddRow("UK", "supplier", "Lloyds Bank").
			AddRow("US", "supplier", "Costco"))

	pools, err := store.New(db).Pools(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Pret A Manger", "Lloyds Bank"}, pools["UK"].Suppliers)
	assert.Equal(t, []string{"1 Strand, London"}, pools["UK"].Addresses)
	assert.Equal(t, []string{"Costco"}, pools["US"].Suppliers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Pools_Errors(t *testing.T) {
	type testCase struct {
		name  string
		setup func(m sqlmock.Sqlmock)
	}

	tests := []testCase{
		{
			name: "QueryError",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(poolQuery).WillReturnError(errors.New("connection refused"))
			},
		},
		{
			name: "UnknownKind",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(poolQuery).
					WillReturnRows(sqlmock.NewRows([]string{"region_code", "kind", "value"}).
						AddRow("UK", "phone", "0207"))
			},
		},
		{
			name: "RowError",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(poolQuery).
					WillReturnRows(sqlmock.NewRows([]string{"region_code", "kind", "value"}).
						AddRow("UK", "supplier", "A").
						RowError(0, errors.New("broken row")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)

			_, err = store.New(db).Pools(context.Background())
			assert.Error(t, err)
		})
	}
}

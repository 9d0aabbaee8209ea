package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/utils"
)

func newTestForm() *models.ProductFormData {
	price := 199.5
	f := &models.ProductFormData{
		Name:    "Tax Update 2024",
		SKU:     "TAX-2024",
		BrandID: 1,
		VersionFormData: models.VersionFormData{
			VersionName:            "v1.0",
			BasePrice:              &price,
			FeatureIDs:             []int{3, 3},
			FulfillmentPlatformIDs: []int{2},
		},
	}
	f.ApplyDefaults()
	return f
}

func expectOfferingLock(mock sqlmock.Sqlmock, id uuid.UUID) {
	mock.ExpectQuery(regexp.QuoteMeta(qLockOffering)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"active", "description_short", "description_long"}).
			AddRow(true, "short", nil))
}

func TestProductRepository_Create(t *testing.T) {
	testCases := []struct {
		name    string
		form    func() *models.ProductFormData
		mock    func(t *testing.T) (*sql.DB, sqlmock.Sqlmock)
		wantErr error
		errText string
	}{
		{
			name: "creates the whole aggregate",
			form: newTestForm,
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT id, ecosystem_id FROM brand_lookup").
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "ecosystem_id"}).AddRow(1, 2))
				mock.ExpectExec("INSERT INTO offering \\(").
					WithArgs(sqlmock.AnyArg(), "Tax Update 2024", "TAX-2024", true, sqlmock.AnyArg(), sqlmock.AnyArg(), false, sqlmock.AnyArg(), 2).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("INSERT INTO sku_version \\(").
					WillReturnRows(sqlmock.NewRows([]string{"sku_version_id"}).AddRow(10))
				mock.ExpectQuery("INSERT INTO sku_version_detail").
					WillReturnRows(sqlmock.NewRows([]string{"sku_version_detail_id"}).AddRow(20))
				mock.ExpectExec("INSERT INTO sku_version_pricing").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO sku_version_features").
					WithArgs(20, 3).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO sku_version_fulfillment_platform").
					WithArgs(10, 2).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO offering_product").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO offering_brand").
					WithArgs(sqlmock.AnyArg(), 1).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
				return mockDB, mock
			},
		},
		{
			name: "falls back to the lowest ecosystem",
			form: func() *models.ProductFormData {
				f := newTestForm()
				f.FeatureIDs = []int{}
				f.FulfillmentPlatformIDs = []int{}
				return f
			},
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT id, ecosystem_id FROM brand_lookup").
					WillReturnRows(sqlmock.NewRows([]string{"id", "ecosystem_id"}).AddRow(3, nil))
				mock.ExpectQuery("SELECT ecosystem_id FROM ecosystem ORDER BY ecosystem_id LIMIT 1").
					WillReturnRows(sqlmock.NewRows([]string{"ecosystem_id"}).AddRow(1))
				mock.ExpectExec("INSERT INTO offering \\(").
					WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("INSERT INTO sku_version \\(").
					WillReturnRows(sqlmock.NewRows([]string{"sku_version_id"}).AddRow(11))
				mock.ExpectQuery("INSERT INTO sku_version_detail").
					WillReturnRows(sqlmock.NewRows([]string{"sku_version_detail_id"}).AddRow(21))
				mock.ExpectExec("INSERT INTO sku_version_pricing").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO offering_product").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO offering_brand").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
				return mockDB, mock
			},
		},
		{
			name: "unknown brand",
			form: newTestForm,
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT id, ecosystem_id FROM brand_lookup").
					WillReturnRows(sqlmock.NewRows([]string{"id", "ecosystem_id"}))
				mock.ExpectRollback()
				return mockDB, mock
			},
			wantErr: utils.ErrBrandNotFound,
		},
		{
			name: "pricing failure rolls back",
			form: newTestForm,
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT id, ecosystem_id FROM brand_lookup").
					WillReturnRows(sqlmock.NewRows([]string{"id", "ecosystem_id"}).AddRow(1, 1))
				mock.ExpectExec("INSERT INTO offering \\(").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("INSERT INTO sku_version \\(").
					WillReturnRows(sqlmock.NewRows([]string{"sku_version_id"}).AddRow(10))
				mock.ExpectQuery("INSERT INTO sku_version_detail").
					WillReturnRows(sqlmock.NewRows([]string{"sku_version_detail_id"}).AddRow(20))
				mock.ExpectExec("INSERT INTO sku_version_pricing").
					WillReturnError(errors.New("numeric field overflow"))
				mock.ExpectRollback()
				return mockDB, mock
			},
			errText: "insert pricing: numeric field overflow",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock := tc.mock(t)
			defer mockDB.Close()
			repo := NewProductRepository(sqlx.NewDb(mockDB, "postgres"))

			id, err := repo.Create(context.Background(), tc.form())
			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, uuid.Nil, id)
			case tc.errText != "":
				assert.EqualError(t, err, tc.errText)
				assert.Equal(t, uuid.Nil, id)
			default:
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_CreateWithContent(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	form := newTestForm()
	format := "video"
	form.ContentFormat = &format
	form.LanguageIDs = []int{1, 2}
	form.FeatureIDs = []int{}
	form.FulfillmentPlatformIDs = []int{}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, ecosystem_id FROM brand_lookup").
		WillReturnRows(sqlmock.NewRows([]string{"id", "ecosystem_id"}).AddRow(1, 1))
	mock.ExpectExec("INSERT INTO offering \\(").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO sku_version \\(").
		WillReturnRows(sqlmock.NewRows([]string{"sku_version_id"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO sku_version_detail").
		WillReturnRows(sqlmock.NewRows([]string{"sku_version_detail_id"}).AddRow(20))
	mock.ExpectExec("INSERT INTO sku_version_pricing").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("INSERT INTO sku_version_content").
		WillReturnRows(sqlmock.NewRows([]string{"sku_version_content_id"}).AddRow(30))
	mock.ExpectExec("INSERT INTO content_language").WithArgs(30, 1).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO content_language").WithArgs(30, 2).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO offering_product").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO offering_brand").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewProductRepository(sqlx.NewDb(mockDB, "postgres"))
	_, err = repo.Create(context.Background(), form)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	id := uuid.New()
	mock.ExpectBegin()
	expectOfferingLock(mock, id)
	mock.ExpectQuery("SELECT id, ecosystem_id FROM brand_lookup").
		WillReturnRows(sqlmock.NewRows([]string{"id", "ecosystem_id"}).AddRow(1, 1))
	mock.ExpectExec("UPDATE offering\\s+SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(qFirstSkuVersion)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"sku_version_id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta(qUpdateSkuVersion)).
		WithArgs(10, "v1.0").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(qFirstDetail)).
		WillReturnRows(sqlmock.NewRows([]string{"sku_version_detail_id"}).AddRow(20))
	mock.ExpectExec("UPDATE sku_version_detail").WillReturnResult(sqlmock.NewResult(0, 1))
	// No pricing row yet: one is inserted.
	mock.ExpectQuery(regexp.QuoteMeta(qFirstPricing)).
		WillReturnRows(sqlmock.NewRows([]string{"sku_version_pricing_id"}))
	mock.ExpectExec("INSERT INTO sku_version_pricing").WillReturnResult(sqlmock.NewResult(1, 1))
	// No brand link yet: one is inserted.
	mock.ExpectExec(regexp.QuoteMeta(qUpdateOfferingBrand)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(qInsertOfferingBrand)).
		WithArgs(id, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewProductRepository(sqlx.NewDb(mockDB, "postgres"))
	require.NoError(t, repo.Update(context.Background(), id, newTestForm()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateNotFound(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(qLockOffering)).
		WillReturnRows(sqlmock.NewRows([]string{"active", "description_short", "description_long"}))
	mock.ExpectRollback()

	repo := NewProductRepository(sqlx.NewDb(mockDB, "postgres"))
	err = repo.Update(context.Background(), uuid.New(), newTestForm())
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete(t *testing.T) {
	id := uuid.New()
	testCases := []struct {
		name    string
		mock    func(t *testing.T) (*sql.DB, sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deletes children before parents",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				expectOfferingLock(mock, id)
				for _, pattern := range []string{
					"DELETE FROM content_language",
					"DELETE FROM sku_version_content",
					"DELETE FROM sku_version_features",
					"DELETE FROM sku_version_pricing",
					"DELETE FROM sku_version_detail",
					"DELETE FROM sku_version_fulfillment_platform",
					"DELETE FROM offering_product",
					"DELETE FROM sku_version WHERE",
					"DELETE FROM offering_brand",
					"UPDATE learning_path_item SET prerequisite_offering_id = NULL",
					"DELETE FROM learning_path_item",
					"DELETE FROM offering WHERE",
				} {
					mock.ExpectExec(pattern).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
				}
				mock.ExpectCommit()
				return mockDB, mock
			},
		},
		{
			name: "missing offering",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(qLockOffering)).
					WillReturnRows(sqlmock.NewRows([]string{"active", "description_short", "description_long"}))
				mock.ExpectRollback()
				return mockDB, mock
			},
			wantErr: utils.ErrProductNotFound,
		},
		{
			name: "failure mid-way rolls back",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				expectOfferingLock(mock, id)
				mock.ExpectExec("DELETE FROM content_language").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("DELETE FROM sku_version_content").WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
				return mockDB, mock
			},
			wantErr: sql.ErrConnDone,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock := tc.mock(t)
			defer mockDB.Close()
			repo := NewProductRepository(sqlx.NewDb(mockDB, "postgres"))

			err := repo.Delete(context.Background(), id)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_AddVersion(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	id := uuid.New()
	form := newTestForm().VersionFormData
	form.VersionName = "v2.0"
	form.FeatureIDs = []int{}
	form.FulfillmentPlatformIDs = []int{}

	mock.ExpectBegin()
	expectOfferingLock(mock, id)
	mock.ExpectQuery("INSERT INTO sku_version \\(").
		WithArgs(id, "v2.0").
		WillReturnRows(sqlmock.NewRows([]string{"sku_version_id"}).AddRow(12))
	// The detail inherits active and the short description from the offering.
	mock.ExpectQuery("INSERT INTO sku_version_detail").
		WithArgs(12, "v2.0", true, false, false, "short", nil, false, nil, nil, nil, false, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"sku_version_detail_id"}).AddRow(22))
	mock.ExpectExec("INSERT INTO sku_version_pricing").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO offering_product").
		WithArgs(id, 12).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewProductRepository(sqlx.NewDb(mockDB, "postgres"))
	versionID, err := repo.AddVersion(context.Background(), id, &form)
	require.NoError(t, err)
	assert.Equal(t, 12, versionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, uniqueIDs([]int{3, 1, 3, 2, 1}))
	assert.Equal(t, []int{}, uniqueIDs(nil))
}

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"github.com/GTDGit/catalog_api/internal/database"
	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/utils"
)

// CatalogSuite runs the repositories against a real Postgres. The lookup
// rows come from the seed migration.
type CatalogSuite struct {
	suite.Suite
	dsn     string
	db      *sqlx.DB
	repo    *ProductRepository
	paths   *LearningPathRepository
	lookups *LookupRepository
}

func TestCatalogSuite(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run repository integration tests")
	}
	suite.Run(t, &CatalogSuite{dsn: dsn})
}

func (s *CatalogSuite) SetupSuite() {
	db, err := database.ConnectDSN(s.dsn)
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db.DB, "file://../../migrations"))
	s.db = db
	s.repo = NewProductRepository(db)
	s.paths = NewLearningPathRepository(db)
	s.lookups = NewLookupRepository(db)
}

func (s *CatalogSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *CatalogSuite) SetupTest() {
	_, err := s.db.Exec(`TRUNCATE offering, learning_path CASCADE`)
	s.Require().NoError(err)
}

func (s *CatalogSuite) form(sku string) *models.ProductFormData {
	price := 199.5
	discount := 12.5
	format := "video"
	short := "Annual tax update"
	f := &models.ProductFormData{
		Name:             "Tax Update",
		SKU:              sku,
		BrandID:          1,
		DescriptionShort: &short,
		VersionFormData: models.VersionFormData{
			VersionName:            "v1.0",
			BasePrice:              &price,
			DiscountPercentage:     &discount,
			ContentFormat:          &format,
			LanguageIDs:            []int{1, 2},
			FeatureIDs:             []int{1, 2},
			FulfillmentPlatformIDs: []int{1, 2, 3},
		},
	}
	f.ApplyDefaults()
	return f
}

func (s *CatalogSuite) count(q string, args ...interface{}) int {
	var n int
	s.Require().NoError(s.db.Get(&n, q, args...))
	return n
}

func (s *CatalogSuite) TestCreateThenRead() {
	ctx := context.Background()
	id, err := s.repo.Create(ctx, s.form("TAX-1"))
	s.Require().NoError(err)

	p, err := s.repo.GetByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("Tax Update", p.Name)
	s.Equal("TAX-1", p.SKU)
	s.Equal(models.ProductStatusActive, p.Status)
	s.Require().NotNil(p.EcosystemID)
	s.Equal(1, *p.EcosystemID)
	s.Require().Len(p.OfferingBrands, 1)
	s.Equal(1, p.OfferingBrands[0].BrandID)
	s.Require().Len(p.OfferingProducts, 1)
	s.Require().Len(p.SkuVersions, 1)

	v := p.SkuVersions[0]
	s.Equal(v.SkuVersionID, p.OfferingProducts[0].SkuVersionID)
	s.Len(v.SkuVersionFulfillmentPlatforms, 3)
	s.Require().NotNil(v.SkuVersionDetail)
	s.Equal("Annual tax update", *v.SkuVersionDetail.DescriptionShort)
	s.Len(v.SkuVersionDetail.SkuVersionFeatures, 2)
	s.Require().Len(v.SkuVersionDetail.SkuVersionPricing, 1)
	s.Equal("199.5", v.SkuVersionDetail.SkuVersionPricing[0].BasePrice.String())
	s.Equal("12.5", v.SkuVersionDetail.SkuVersionPricing[0].DiscountPercentage.Decimal.String())
	s.Require().Len(v.SkuVersionDetail.SkuVersionContents, 1)
	s.Len(v.SkuVersionDetail.SkuVersionContents[0].ContentLanguages, 2)
}

func (s *CatalogSuite) TestCreateIsAtomic() {
	f := s.form("TAX-BROKEN")
	f.FeatureIDs = []int{1, 999}

	_, err := s.repo.Create(context.Background(), f)
	s.Require().Error(err)
	s.Equal(0, s.count(`SELECT COUNT(*) FROM offering WHERE sku = $1`, "TAX-BROKEN"))
	s.Equal(0, s.count(`SELECT COUNT(*) FROM sku_version`))
	s.Equal(0, s.count(`SELECT COUNT(*) FROM sku_version_pricing`))
}

func (s *CatalogSuite) TestEcosystemDerivation() {
	ctx := context.Background()
	explicit := 3

	testCases := []struct {
		name      string
		brandID   int
		ecosystem *int
		want      int
	}{
		{name: "brand default", brandID: 2, want: 2},
		{name: "lowest ecosystem when the brand has none", brandID: 3, want: 1},
		{name: "explicit wins", brandID: 1, ecosystem: &explicit, want: 3},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			f := s.form("ECO-" + tc.name)
			f.BrandID = tc.brandID
			f.EcosystemID = tc.ecosystem
			id, err := s.repo.Create(ctx, f)
			s.Require().NoError(err)

			p, err := s.repo.GetByID(ctx, id)
			s.Require().NoError(err)
			s.Require().NotNil(p.EcosystemID)
			s.Equal(tc.want, *p.EcosystemID)
		})
	}

	f := s.form("ECO-UNKNOWN")
	f.BrandID = 999
	_, err := s.repo.Create(ctx, f)
	s.ErrorIs(err, utils.ErrBrandNotFound)
}

func (s *CatalogSuite) TestUpdateTouchesFirstVersionOnly() {
	ctx := context.Background()
	id, err := s.repo.Create(ctx, s.form("UPD-1"))
	s.Require().NoError(err)

	second := s.form("UPD-1").VersionFormData
	second.VersionName = "v2.0"
	_, err = s.repo.AddVersion(ctx, id, &second)
	s.Require().NoError(err)

	f := s.form("UPD-2")
	f.Name = "Tax Update Renamed"
	f.BrandID = 2
	f.ProductStatus = models.ProductStatusDraft
	f.VersionName = "v1.1"
	price := 250.0
	f.BasePrice = &price
	s.Require().NoError(s.repo.Update(ctx, id, f))

	p, err := s.repo.GetByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("Tax Update Renamed", p.Name)
	s.Equal("UPD-2", p.SKU)
	s.Equal(models.ProductStatusDraft, p.Status)
	s.Equal(2, p.FirstBrandID())
	s.Require().Len(p.SkuVersions, 2)
	s.Equal("v1.1", *p.SkuVersions[0].VersionName)
	s.Equal("250", p.SkuVersions[0].SkuVersionDetail.SkuVersionPricing[0].BasePrice.String())
	s.Equal("v2.0", *p.SkuVersions[1].VersionName)
	s.Equal("199.5", p.SkuVersions[1].SkuVersionDetail.SkuVersionPricing[0].BasePrice.String())

	s.ErrorIs(s.repo.Update(ctx, uuid.New(), f), utils.ErrProductNotFound)
}

func (s *CatalogSuite) TestDeleteCascades() {
	ctx := context.Background()
	id, err := s.repo.Create(ctx, s.form("DEL-1"))
	s.Require().NoError(err)
	other, err := s.repo.Create(ctx, s.form("DEL-2"))
	s.Require().NoError(err)

	path, err := s.paths.CreatePath(ctx, &models.LearningPathForm{Name: "CPE", PathType: models.LearningPathSequence})
	s.Require().NoError(err)
	_, err = s.paths.AddItem(ctx, path.PathID, id, true, nil)
	s.Require().NoError(err)
	_, err = s.paths.AddItem(ctx, path.PathID, other, true, &id)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, id))

	s.Equal(0, s.count(`SELECT COUNT(*) FROM offering WHERE offering_id = $1`, id))
	s.Equal(0, s.count(`SELECT COUNT(*) FROM sku_version WHERE offering_id = $1`, id))
	s.Equal(0, s.count(`SELECT COUNT(*) FROM offering_brand WHERE offering_id = $1`, id))
	s.Equal(0, s.count(`SELECT COUNT(*) FROM offering_product WHERE offering_id = $1`, id))
	s.Equal(0, s.count(`SELECT COUNT(*) FROM learning_path_item WHERE offering_id = $1 OR prerequisite_offering_id = $1`, id))

	// The other offering keeps all of its rows.
	s.Equal(1, s.count(`SELECT COUNT(*) FROM sku_version_detail`))
	s.Equal(1, s.count(`SELECT COUNT(*) FROM sku_version_pricing`))
	s.Equal(2, s.count(`SELECT COUNT(*) FROM content_language`))
	s.Equal(3, s.count(`SELECT COUNT(*) FROM sku_version_fulfillment_platform`))

	s.ErrorIs(s.repo.Delete(ctx, id), utils.ErrProductNotFound)
}

func (s *CatalogSuite) TestListFilters() {
	ctx := context.Background()
	a := s.form("LIST-A")
	a.Name = "Audit Essentials"
	_, err := s.repo.Create(ctx, a)
	s.Require().NoError(err)

	b := s.form("LIST-B")
	b.Name = "Bookkeeping Basics"
	b.BrandID = 2
	b.ProductStatus = models.ProductStatusNotForSale
	_, err = s.repo.Create(ctx, b)
	s.Require().NoError(err)

	all, err := s.repo.List(ctx, models.ProductFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Audit Essentials", all[0].Name)

	byBrand, err := s.repo.List(ctx, models.ProductFilter{BrandID: 2})
	s.Require().NoError(err)
	s.Require().Len(byBrand, 1)
	s.Equal("LIST-B", byBrand[0].SKU)

	bySearch, err := s.repo.List(ctx, models.ProductFilter{Search: "audit"})
	s.Require().NoError(err)
	s.Require().Len(bySearch, 1)

	byStatus, err := s.repo.List(ctx, models.ProductFilter{Status: models.ProductStatusInactive})
	s.Require().NoError(err)
	s.Require().Len(byStatus, 1)
	s.Equal(models.ProductStatusNotForSale, byStatus[0].Status)

	byEcosystem, err := s.repo.List(ctx, models.ProductFilter{EcosystemID: 2})
	s.Require().NoError(err)
	s.Len(byEcosystem, 1)
}

func (s *CatalogSuite) TestLearningPathItems() {
	ctx := context.Background()
	id, err := s.repo.Create(ctx, s.form("LP-1"))
	s.Require().NoError(err)

	path, err := s.paths.CreatePath(ctx, &models.LearningPathForm{Name: "Bundle", PathType: models.LearningPathBundle})
	s.Require().NoError(err)
	s.True(path.Active)

	first, err := s.paths.AddItem(ctx, path.PathID, id, true, nil)
	s.Require().NoError(err)
	second, err := s.paths.AddItem(ctx, path.PathID, id, false, nil)
	s.Require().NoError(err)
	s.Equal(1, first.SequenceOrder)
	s.Equal(2, second.SequenceOrder)

	_, err = s.paths.AddItem(ctx, path.PathID, uuid.New(), true, nil)
	s.ErrorIs(err, utils.ErrProductNotFound)
	_, err = s.paths.AddItem(ctx, path.PathID+1000, id, true, nil)
	s.ErrorIs(err, utils.ErrLearningPathNotFound)

	items, err := s.paths.ListItems(ctx, []int{path.PathID})
	s.Require().NoError(err)
	s.Len(items, 2)

	s.Require().NoError(s.paths.RemoveItem(ctx, path.PathID, first.PathItemID))
	s.ErrorIs(s.paths.RemoveItem(ctx, path.PathID, first.PathItemID), utils.ErrLearningPathItemNotFound)
}

func (s *CatalogSuite) TestLookups() {
	ctx := context.Background()

	brands, err := s.lookups.ListBrands(ctx)
	s.Require().NoError(err)
	s.GreaterOrEqual(len(brands), 3)

	ecosystems, err := s.lookups.ListEcosystems(ctx)
	s.Require().NoError(err)
	s.GreaterOrEqual(len(ecosystems), 3)

	platforms, err := s.lookups.ListFulfillmentPlatforms(ctx)
	s.Require().NoError(err)
	s.GreaterOrEqual(len(platforms), 3)

	features, err := s.lookups.ListFeatures(ctx)
	s.Require().NoError(err)
	s.GreaterOrEqual(len(features), 3)

	languages, err := s.lookups.ListLanguages(ctx)
	s.Require().NoError(err)
	s.GreaterOrEqual(len(languages), 2)

	costCenters, err := s.lookups.ListCostCenters(ctx)
	s.Require().NoError(err)
	s.GreaterOrEqual(len(costCenters), 2)
}

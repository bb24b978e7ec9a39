// internal/services/verification_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
)

type VerificationServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	catalog  *CatalogService
	codes    *CodeService
	verifier *VerificationService
	product  *models.Product
	code     string
}

func (suite *VerificationServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.catalog = NewCatalogService(suite.db)
	suite.codes = NewCodeService(suite.db, nil)
	suite.verifier = NewVerificationService(suite.db)

	suite.product = &models.Product{
		Name:           "Widget",
		Brand:          "Acme",
		ManufacturedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:         models.ProductStatusActive,
	}
	suite.Require().NoError(suite.db.Create(suite.product).Error)

	issued, err := suite.codes.IssueCodes(suite.product.ID, &IssueCodesRequest{Quantity: 1})
	suite.Require().NoError(err)
	suite.code = issued[0].Code
}

func (suite *VerificationServiceTestSuite) TestActiveProductGenuineForBothRoles() {
	for _, role := range []models.Role{models.RoleWorker, models.RoleClient} {
		verdict, err := suite.verifier.Verify(suite.code, role)
		suite.NoError(err)
		suite.Equal(models.VerdictGenuine, verdict.Status)
		suite.Equal("Widget", verdict.ProductName)
		suite.Equal("Acme", verdict.Brand)
		suite.Require().NotNil(verdict.ManufacturedAt)
		suite.True(verdict.ManufacturedAt.Equal(suite.product.ManufacturedAt))
	}
}

func (suite *VerificationServiceTestSuite) TestArchivedProductSplitsByRole() {
	_, err := suite.catalog.ArchiveProduct(suite.product.ID)
	suite.Require().NoError(err)

	verdict, err := suite.verifier.Verify(suite.code, models.RoleWorker)
	suite.NoError(err)
	suite.Equal(models.VerdictGenuine, verdict.Status)

	verdict, err = suite.verifier.Verify(suite.code, models.RoleClient)
	suite.NoError(err)
	suite.Equal(models.VerdictFake, verdict.Status)
	suite.Empty(verdict.ProductName)
}

func (suite *VerificationServiceTestSuite) TestDeletedProductFakeForBothRoles() {
	suite.Require().NoError(suite.catalog.DeleteProduct(suite.product.ID))

	for _, role := range []models.Role{models.RoleWorker, models.RoleClient} {
		verdict, err := suite.verifier.Verify(suite.code, role)
		suite.NoError(err)
		suite.Equal(models.VerdictFake, verdict.Status)
	}
}

func (suite *VerificationServiceTestSuite) TestUnknownCodeIsFake() {
	verdict, err := suite.verifier.Verify("ZZZZZZZZZZZZ", models.RoleClient)
	suite.NoError(err)
	suite.Equal(models.VerdictFake, verdict.Status)
	suite.Equal("ZZZZZZZZZZZZ", verdict.Code)
}

func (suite *VerificationServiceTestSuite) TestLookupIsExactMatch() {
	// No trimming or case folding: near misses are fake.
	variants := []string{
		" " + suite.code,
		suite.code + " ",
		suite.code[:11],
	}
	for _, variant := range variants {
		verdict, err := suite.verifier.Verify(variant, models.RoleWorker)
		suite.NoError(err)
		suite.Equal(models.VerdictFake, verdict.Status, "variant %q must not match", variant)
	}
}

func (suite *VerificationServiceTestSuite) TestDeletedCodeIsFakeEvenOnActiveProduct() {
	var stored models.ProductCode
	suite.Require().NoError(suite.db.Where("code = ?", suite.code).First(&stored).Error)
	suite.Require().NoError(suite.codes.DeleteCode(stored.ID))

	verdict, err := suite.verifier.Verify(suite.code, models.RoleWorker)
	suite.NoError(err)
	suite.Equal(models.VerdictFake, verdict.Status)
}

func (suite *VerificationServiceTestSuite) TestAdminCannotVerify() {
	_, err := suite.verifier.Verify(suite.code, models.RoleAdmin)
	suite.EqualError(err, "unauthorized role for verification")
}

func TestVerificationServiceSuite(t *testing.T) {
	suite.Run(t, new(VerificationServiceTestSuite))
}

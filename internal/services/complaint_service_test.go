// internal/services/complaint_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
)

type ComplaintServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	complaints *ComplaintService
}

func (suite *ComplaintServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.complaints = NewComplaintService(suite.db)
}

func (suite *ComplaintServiceTestSuite) raise(code string, createdAt time.Time) *models.ComplaintToken {
	token, err := suite.complaints.RaiseComplaint(&RaiseComplaintRequest{
		ProductName:     "Widget",
		Brand:           "Acme",
		Code:            code,
		Issue:           "Code scanned as fake",
		CustomerName:    "Jordan Smith",
		CustomerContact: "jordan@example.com",
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.Model(token).Update("created_at", createdAt).Error)
	return token
}

func (suite *ComplaintServiceTestSuite) TestRaiseComplaintOpensTicket() {
	token, err := suite.complaints.RaiseComplaint(&RaiseComplaintRequest{
		ProductName:     "Widget",
		Brand:           "Acme",
		Code:            "ABCDEF123456",
		Issue:           "Bought at a market stall, verification said fake",
		CustomerName:    "Jordan Smith",
		CustomerContact: "+1-555-0100",
	})
	suite.NoError(err)
	suite.Equal(models.ComplaintStatusOpen, token.Status)
	suite.Empty(token.AdminReply)
}

func (suite *ComplaintServiceTestSuite) TestComplaintNeedsNoMatchingCode() {
	// Fake codes are exactly what gets complained about; nothing in the
	// catalog has to match.
	token, err := suite.complaints.RaiseComplaint(&RaiseComplaintRequest{
		ProductName:     "Nonexistent",
		Brand:           "NoBrand",
		Code:            "not-even-shaped-like-a-code",
		Issue:           "Sticker peeled off another box",
		CustomerName:    "Jordan Smith",
		CustomerContact: "jordan@example.com",
	})
	suite.NoError(err)
	suite.NotEqual("", token.ID.String())
}

func (suite *ComplaintServiceTestSuite) TestRaiseComplaintRejectsMissingFields() {
	_, err := suite.complaints.RaiseComplaint(&RaiseComplaintRequest{
		ProductName: "Widget",
	})
	suite.Error(err)

	var count int64
	suite.NoError(suite.db.Model(&models.ComplaintToken{}).Count(&count).Error)
	suite.EqualValues(0, count)
}

func (suite *ComplaintServiceTestSuite) TestListComplaintsNewestFirst() {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.raise("AAAAAAAAAAAA", base)
	suite.raise("BBBBBBBBBBBB", base.Add(time.Hour))
	suite.raise("CCCCCCCCCCCC", base.Add(2*time.Hour))

	tokens, total, err := suite.complaints.ListComplaints(testParams())
	suite.NoError(err)
	suite.EqualValues(3, total)
	suite.Require().Len(tokens, 3)
	suite.Equal("CCCCCCCCCCCC", tokens[0].Code)
	suite.Equal("AAAAAAAAAAAA", tokens[2].Code)
}

func (suite *ComplaintServiceTestSuite) TestComplaintSurvivesProductDeletion() {
	catalog := NewCatalogService(suite.db)
	codes := NewCodeService(suite.db, nil)

	product := &models.Product{
		Name:           "Widget",
		Brand:          "Acme",
		ManufacturedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:         models.ProductStatusActive,
	}
	suite.Require().NoError(suite.db.Create(product).Error)
	issued, err := codes.IssueCodes(product.ID, &IssueCodesRequest{Quantity: 1})
	suite.Require().NoError(err)

	suite.raise(issued[0].Code, time.Now())
	suite.Require().NoError(catalog.DeleteProduct(product.ID))

	tokens, total, err := suite.complaints.ListComplaints(testParams())
	suite.NoError(err)
	suite.EqualValues(1, total)
	suite.Equal(issued[0].Code, tokens[0].Code)
}

func TestComplaintServiceSuite(t *testing.T) {
	suite.Run(t, new(ComplaintServiceTestSuite))
}

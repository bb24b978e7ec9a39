// internal/services/code_service_test.go
package services

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/events"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
)

// recordingSink captures published events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []events.CodeIssued
}

func (s *recordingSink) Publish(ctx context.Context, event events.CodeIssued) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type CodeServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	sink    *recordingSink
	codes   *CodeService
	product *models.Product
}

func (suite *CodeServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.sink = &recordingSink{}
	suite.codes = NewCodeService(suite.db, suite.sink)

	suite.product = &models.Product{
		Name:           "Widget",
		Brand:          "Acme",
		ManufacturedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:         models.ProductStatusActive,
	}
	suite.Require().NoError(suite.db.Create(suite.product).Error)
}

func (suite *CodeServiceTestSuite) TestIssueBatchCompleteAndUnique() {
	issued, err := suite.codes.IssueCodes(suite.product.ID, &IssueCodesRequest{Quantity: 25})
	suite.NoError(err)
	suite.Len(issued, 25)

	pattern := regexp.MustCompile("^[A-Z0-9]{12}$")
	seen := make(map[string]bool)
	for _, code := range issued {
		suite.Regexp(pattern, code.Code)
		suite.False(seen[code.Code], "code %s issued twice", code.Code)
		seen[code.Code] = true
		suite.Equal(suite.product.ID, code.ProductID)
	}

	stored, err := suite.codes.ListCodes(suite.product.ID)
	suite.NoError(err)
	suite.Len(stored, 25)
}

func (suite *CodeServiceTestSuite) TestIssueForUnknownProduct() {
	issued, err := suite.codes.IssueCodes(uuid.New(), &IssueCodesRequest{Quantity: 1})
	suite.EqualError(err, "product not found")
	suite.Empty(issued)
}

func (suite *CodeServiceTestSuite) TestIssueRejectsNonPositiveQuantity() {
	_, err := suite.codes.IssueCodes(suite.product.ID, &IssueCodesRequest{Quantity: 0})
	suite.Error(err)

	_, err = suite.codes.IssueCodes(suite.product.ID, &IssueCodesRequest{Quantity: -3})
	suite.Error(err)
}

func (suite *CodeServiceTestSuite) TestIssueForArchivedProduct() {
	suite.Require().NoError(suite.db.Model(suite.product).
		Update("status", models.ProductStatusArchived).Error)

	issued, err := suite.codes.IssueCodes(suite.product.ID, &IssueCodesRequest{Quantity: 2})
	suite.NoError(err)
	suite.Len(issued, 2)
}

func (suite *CodeServiceTestSuite) TestCollisionRetriesWithFreshCode() {
	// Occupy a code value, then force the generator to collide with it once.
	suite.Require().NoError(suite.db.Create(&models.ProductCode{
		ProductID: suite.product.ID,
		Code:      "AAAAAAAAAAAA",
	}).Error)

	sequence := []string{"AAAAAAAAAAAA", "BBBBBBBBBBBB"}
	suite.codes.generateCode = func() (string, error) {
		next := sequence[0]
		if len(sequence) > 1 {
			sequence = sequence[1:]
		}
		return next, nil
	}

	issued, err := suite.codes.IssueCodes(suite.product.ID, &IssueCodesRequest{Quantity: 1})
	suite.NoError(err)
	suite.Require().Len(issued, 1)
	suite.Equal("BBBBBBBBBBBB", issued[0].Code)
}

func (suite *CodeServiceTestSuite) TestCollisionRetriesExhausted() {
	suite.Require().NoError(suite.db.Create(&models.ProductCode{
		ProductID: suite.product.ID,
		Code:      "AAAAAAAAAAAA",
	}).Error)

	// Every draw collides.
	suite.codes.generateCode = func() (string, error) {
		return "AAAAAAAAAAAA", nil
	}

	issued, err := suite.codes.IssueCodes(suite.product.ID, &IssueCodesRequest{Quantity: 1})
	suite.EqualError(err, "code generation retries exhausted")
	suite.Empty(issued)
}

func (suite *CodeServiceTestSuite) TestPartialBatchIsObservable() {
	suite.Require().NoError(suite.db.Create(&models.ProductCode{
		ProductID: suite.product.ID,
		Code:      "AAAAAAAAAAAA",
	}).Error)

	// Two good draws, then permanent collisions: the first two codes stay
	// issued and are returned with the error.
	sequence := []string{"BBBBBBBBBBBB", "CCCCCCCCCCCC"}
	suite.codes.generateCode = func() (string, error) {
		if len(sequence) > 0 {
			next := sequence[0]
			sequence = sequence[1:]
			return next, nil
		}
		return "AAAAAAAAAAAA", nil
	}

	issued, err := suite.codes.IssueCodes(suite.product.ID, &IssueCodesRequest{Quantity: 3})
	suite.Error(err)
	suite.Len(issued, 2)

	var count int64
	suite.NoError(suite.db.Model(&models.ProductCode{}).
		Where("product_id = ?", suite.product.ID).Count(&count).Error)
	suite.EqualValues(3, count) // pre-seeded + 2 issued
}

func (suite *CodeServiceTestSuite) TestIssuedEventsReachSink() {
	issued, err := suite.codes.IssueCodes(suite.product.ID, &IssueCodesRequest{Quantity: 3})
	suite.Require().NoError(err)
	suite.Require().Len(issued, 3)

	suite.Eventually(func() bool {
		return suite.sink.count() == 3
	}, time.Second, 10*time.Millisecond)

	suite.sink.mu.Lock()
	defer suite.sink.mu.Unlock()
	for _, event := range suite.sink.events {
		suite.Equal("Widget", event.ProductName)
		suite.Equal("Acme", event.Brand)
		suite.Len(event.Code, 12)
	}
}

func (suite *CodeServiceTestSuite) TestDeleteCode() {
	issued, err := suite.codes.IssueCodes(suite.product.ID, &IssueCodesRequest{Quantity: 2})
	suite.Require().NoError(err)

	suite.NoError(suite.codes.DeleteCode(issued[0].ID))

	remaining, err := suite.codes.ListCodes(suite.product.ID)
	suite.NoError(err)
	suite.Len(remaining, 1)
	suite.Equal(issued[1].Code, remaining[0].Code)

	suite.EqualError(suite.codes.DeleteCode(issued[0].ID), "code not found")
}

func TestCodeServiceSuite(t *testing.T) {
	suite.Run(t, new(CodeServiceTestSuite))
}

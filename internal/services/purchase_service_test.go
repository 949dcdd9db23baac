// internal/services/purchase_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/models"
)

type PurchaseServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *PurchaseService
	owner   *models.User
	client  *models.Client
	product *models.Product
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.svc = NewPurchaseService(suite.db)
	suite.owner = newTestUser(suite.T(), suite.db, "buyer")

	suite.client = &models.Client{
		FirstName:   "Ada",
		LastName:    "Client",
		Email:       "ada@example.com",
		Status:      models.ClientStatusDirect,
		CreatedByID: suite.owner.ID,
	}
	suite.Require().NoError(suite.db.Create(suite.client).Error)

	suite.product = &models.Product{
		Name:     "Widget",
		NetPrice: decimal.RequireFromString("10.00"),
	}
	suite.Require().NoError(suite.db.Create(suite.product).Error)
}

func (suite *PurchaseServiceTestSuite) soldQuantity() int {
	var product models.Product
	suite.Require().NoError(suite.db.First(&product, suite.product.ID).Error)
	return product.SoldQuantity
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseAccumulatesSoldQuantity() {
	for _, qty := range []int{3, 5, 2} {
		_, err := suite.svc.CreatePurchase(suite.owner.ID, &CreatePurchaseRequest{
			ClientID:  suite.client.ID,
			ProductID: suite.product.ID,
			Quantity:  qty,
		})
		suite.Require().NoError(err)
	}

	suite.Equal(10, suite.soldQuantity())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseLoadsRelations() {
	purchase, err := suite.svc.CreatePurchase(suite.owner.ID, &CreatePurchaseRequest{
		ClientID:  suite.client.ID,
		ProductID: suite.product.ID,
		Quantity:  2,
	})
	suite.Require().NoError(err)

	suite.Equal("Widget", purchase.Product.Name)
	suite.Equal("Ada", purchase.Client.FirstName)
	suite.True(purchase.LineTotal().Equal(decimal.RequireFromString("20.00")))
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseRejectsUnknownClient() {
	_, err := suite.svc.CreatePurchase(suite.owner.ID, &CreatePurchaseRequest{
		ClientID:  uuid.New(),
		ProductID: suite.product.ID,
		Quantity:  1,
	})
	suite.Require().Error(err)
	suite.Equal("client not found", err.Error())

	// Nothing committed
	suite.Equal(0, suite.soldQuantity())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseRejectsForeignClient() {
	other := newTestUser(suite.T(), suite.db, "intruder")

	_, err := suite.svc.CreatePurchase(other.ID, &CreatePurchaseRequest{
		ClientID:  suite.client.ID,
		ProductID: suite.product.ID,
		Quantity:  1,
	})
	suite.Require().Error(err)
	suite.Equal("client not found", err.Error())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseRejectsZeroQuantity() {
	_, err := suite.svc.CreatePurchase(suite.owner.ID, &CreatePurchaseRequest{
		ClientID:  suite.client.ID,
		ProductID: suite.product.ID,
		Quantity:  0,
	})
	suite.Require().Error(err)
}

func (suite *PurchaseServiceTestSuite) TestDeletePurchaseRollsBackSoldQuantity() {
	purchase, err := suite.svc.CreatePurchase(suite.owner.ID, &CreatePurchaseRequest{
		ClientID:  suite.client.ID,
		ProductID: suite.product.ID,
		Quantity:  4,
	})
	suite.Require().NoError(err)
	suite.Equal(4, suite.soldQuantity())

	suite.Require().NoError(suite.svc.DeletePurchase(purchase.ID, suite.owner.ID))
	suite.Equal(0, suite.soldQuantity())
}

func (suite *PurchaseServiceTestSuite) TestListClientPurchases() {
	for i := 0; i < 3; i++ {
		_, err := suite.svc.CreatePurchase(suite.owner.ID, &CreatePurchaseRequest{
			ClientID:  suite.client.ID,
			ProductID: suite.product.ID,
			Quantity:  1,
		})
		suite.Require().NoError(err)
	}

	purchases, total, err := suite.svc.ListClientPurchases(suite.client.ID, suite.owner.ID, testPaginationParams())
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(purchases, 3)
}

func TestPurchaseServiceSuite(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}

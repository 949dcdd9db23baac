// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.svc = NewProductService(suite.db)
}

func (suite *ProductServiceTestSuite) TestCreateProductParsesDecimalPrice() {
	product, err := suite.svc.CreateProduct(&CreateProductRequest{
		Name:     "Widget",
		NetPrice: "19.99",
	})
	suite.Require().NoError(err)

	suite.True(product.NetPrice.Equal(decimal.RequireFromString("19.99")))
	suite.Equal(0, product.SoldQuantity)
}

func (suite *ProductServiceTestSuite) TestCreateProductRoundsToCents() {
	product, err := suite.svc.CreateProduct(&CreateProductRequest{
		Name:     "Widget",
		NetPrice: "10.005",
	})
	suite.Require().NoError(err)

	suite.Equal("10.01", product.NetPrice.StringFixed(2))
}

func (suite *ProductServiceTestSuite) TestCreateProductRejectsBadPrice() {
	_, err := suite.svc.CreateProduct(&CreateProductRequest{
		Name:     "Widget",
		NetPrice: "ten dollars",
	})
	suite.Require().Error(err)

	_, err = suite.svc.CreateProduct(&CreateProductRequest{
		Name:     "Widget",
		NetPrice: "-5.00",
	})
	suite.Require().Error(err)
}

func (suite *ProductServiceTestSuite) TestDeleteProductWithPurchasesFails() {
	product, err := suite.svc.CreateProduct(&CreateProductRequest{
		Name:     "Widget",
		NetPrice: "5.00",
	})
	suite.Require().NoError(err)

	owner := newTestUser(suite.T(), suite.db, "prodowner")
	client := &models.Client{
		FirstName:   "Ada",
		LastName:    "Client",
		Email:       "ada@example.com",
		Status:      models.ClientStatusDirect,
		CreatedByID: owner.ID,
	}
	suite.Require().NoError(suite.db.Create(client).Error)

	purchaseSvc := NewPurchaseService(suite.db)
	_, err = purchaseSvc.CreatePurchase(owner.ID, &CreatePurchaseRequest{
		ClientID:  client.ID,
		ProductID: product.ID,
		Quantity:  1,
	})
	suite.Require().NoError(err)

	err = suite.svc.DeleteProduct(product.ID)
	suite.Require().Error(err)
	suite.Equal("cannot delete product with recorded purchases", err.Error())
}

func (suite *ProductServiceTestSuite) TestListProductsSearch() {
	for _, name := range []string{"Widget Pro", "Gadget", "Widget Mini"} {
		_, err := suite.svc.CreateProduct(&CreateProductRequest{
			Name:     name,
			NetPrice: "1.00",
		})
		suite.Require().NoError(err)
	}

	params := testPaginationParams()
	params.Search = "widget"

	products, total, err := suite.svc.ListProducts(params)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(products, 2)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

// internal/services/lead_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/models"
)

type LeadServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	svc   *LeadService
	owner *models.User
}

func (suite *LeadServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.svc = NewLeadService(suite.db)
	suite.owner = newTestUser(suite.T(), suite.db, "leadowner")
}

func (suite *LeadServiceTestSuite) TestCreateLeadDefaults() {
	lead, err := suite.svc.CreateLead(suite.owner.ID, &CreateLeadRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Company:   "Navy",
	})
	suite.Require().NoError(err)

	suite.Equal(models.LeadStatusNew, lead.Status)
	suite.Equal(models.LeadPriorityMedium, lead.Priority)
	suite.Equal(suite.owner.ID, lead.CreatedByID)
}

func (suite *LeadServiceTestSuite) TestUpdateLeadStatusRejectsUnknownStatus() {
	lead, err := suite.svc.CreateLead(suite.owner.ID, &CreateLeadRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	suite.Require().NoError(err)

	_, err = suite.svc.UpdateLeadStatus(lead.ID, suite.owner.ID, &UpdateLeadStatusRequest{
		Status: models.LeadStatus("closed"),
	})
	suite.Require().Error(err)
	suite.Equal("invalid lead status", err.Error())
}

func (suite *LeadServiceTestSuite) TestLeadsScopedToOwner() {
	other := newTestUser(suite.T(), suite.db, "otherowner")

	lead, err := suite.svc.CreateLead(suite.owner.ID, &CreateLeadRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	suite.Require().NoError(err)

	_, err = suite.svc.GetLead(lead.ID, other.ID)
	suite.Require().Error(err)
	suite.Equal("lead not found", err.Error())
}

func (suite *LeadServiceTestSuite) TestConvertLeadCreatesClientAndMarksWon() {
	lead, err := suite.svc.CreateLead(suite.owner.ID, &CreateLeadRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Company:   "Navy",
		Email:     "grace@example.com",
		Phone:     "555-0100",
	})
	suite.Require().NoError(err)

	client, err := suite.svc.ConvertLead(lead.ID, suite.owner.ID, &ConvertLeadRequest{})
	suite.Require().NoError(err)

	suite.Equal("Grace", client.FirstName)
	suite.Equal("Navy", client.Company)
	suite.Equal("grace@example.com", client.Email)
	suite.Equal(models.ClientStatusDirect, client.Status)
	suite.Require().NotNil(client.ConvertedFromLead)
	suite.Equal(lead.ID, *client.ConvertedFromLead)

	var updated models.Lead
	suite.Require().NoError(suite.db.First(&updated, lead.ID).Error)
	suite.Equal(models.LeadStatusWon, updated.Status)
}

func (suite *LeadServiceTestSuite) TestConvertLeadTwiceFails() {
	lead, err := suite.svc.CreateLead(suite.owner.ID, &CreateLeadRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	suite.Require().NoError(err)

	_, err = suite.svc.ConvertLead(lead.ID, suite.owner.ID, &ConvertLeadRequest{})
	suite.Require().NoError(err)

	_, err = suite.svc.ConvertLead(lead.ID, suite.owner.ID, &ConvertLeadRequest{})
	suite.Require().Error(err)
	suite.Equal("lead has already been converted", err.Error())

	var clients int64
	suite.db.Model(&models.Client{}).Count(&clients)
	suite.Equal(int64(1), clients)
}

func (suite *LeadServiceTestSuite) TestListLeadsFiltersByStatus() {
	for i := 0; i < 2; i++ {
		_, err := suite.svc.CreateLead(suite.owner.ID, &CreateLeadRequest{
			FirstName: "New",
			LastName:  "Lead",
		})
		suite.Require().NoError(err)
	}

	lead, err := suite.svc.CreateLead(suite.owner.ID, &CreateLeadRequest{
		FirstName: "Hot",
		LastName:  "Lead",
	})
	suite.Require().NoError(err)

	_, err = suite.svc.UpdateLeadStatus(lead.ID, suite.owner.ID, &UpdateLeadStatusRequest{
		Status: models.LeadStatusContacted,
	})
	suite.Require().NoError(err)

	params := testPaginationParams()
	params.Status = "contacted"

	leads, total, err := suite.svc.ListLeads(suite.owner.ID, params)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(leads, 1)
	suite.Equal("Hot", leads[0].FirstName)
}

func TestLeadServiceSuite(t *testing.T) {
	suite.Run(t, new(LeadServiceTestSuite))
}

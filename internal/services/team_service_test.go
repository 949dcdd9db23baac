// internal/services/team_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/models"
)

type TeamServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	svc   *TeamService
	owner *models.User
}

func (suite *TeamServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.svc = NewTeamService(suite.db)
	suite.owner = newTestUser(suite.T(), suite.db, "teamowner")
}

func (suite *TeamServiceTestSuite) TestCreateTeamEnrollsCreatorAsOwner() {
	team, err := suite.svc.CreateTeam(suite.owner.ID, &CreateTeamRequest{Name: "Platform"})
	suite.Require().NoError(err)

	var membership models.TeamMembership
	suite.Require().NoError(suite.db.
		Where("team_id = ? AND user_id = ?", team.ID, suite.owner.ID).
		First(&membership).Error)
	suite.Equal(models.TeamRoleOwner, membership.Role)
	suite.True(membership.IsActive)
}

func (suite *TeamServiceTestSuite) TestCreateTeamRejectsDuplicateName() {
	_, err := suite.svc.CreateTeam(suite.owner.ID, &CreateTeamRequest{Name: "Platform"})
	suite.Require().NoError(err)

	_, err = suite.svc.CreateTeam(suite.owner.ID, &CreateTeamRequest{Name: "Platform"})
	suite.Require().Error(err)
	suite.Equal("team name already taken", err.Error())
}

func (suite *TeamServiceTestSuite) TestAddMemberRequiresAdminRole() {
	team, err := suite.svc.CreateTeam(suite.owner.ID, &CreateTeamRequest{Name: "Platform"})
	suite.Require().NoError(err)

	member := newTestUser(suite.T(), suite.db, "member1")
	outsider := newTestUser(suite.T(), suite.db, "outsider")

	// An outsider cannot add members
	_, err = suite.svc.AddMember(team.ID, outsider.ID, &AddTeamMemberRequest{UserID: member.ID})
	suite.Require().Error(err)

	// The owner can
	membership, err := suite.svc.AddMember(team.ID, suite.owner.ID, &AddTeamMemberRequest{UserID: member.ID})
	suite.Require().NoError(err)
	suite.Equal(models.TeamRoleMember, membership.Role)

	// A plain member cannot add members either
	another := newTestUser(suite.T(), suite.db, "member2")
	_, err = suite.svc.AddMember(team.ID, member.ID, &AddTeamMemberRequest{UserID: another.ID})
	suite.Require().Error(err)
	suite.Equal("insufficient team role", err.Error())
}

func (suite *TeamServiceTestSuite) TestAddMemberRejectsDuplicates() {
	team, err := suite.svc.CreateTeam(suite.owner.ID, &CreateTeamRequest{Name: "Platform"})
	suite.Require().NoError(err)

	member := newTestUser(suite.T(), suite.db, "member1")

	_, err = suite.svc.AddMember(team.ID, suite.owner.ID, &AddTeamMemberRequest{UserID: member.ID})
	suite.Require().NoError(err)

	_, err = suite.svc.AddMember(team.ID, suite.owner.ID, &AddTeamMemberRequest{UserID: member.ID})
	suite.Require().Error(err)
	suite.Equal("user is already a team member", err.Error())
}

func (suite *TeamServiceTestSuite) TestUpdateMemberChangesRole() {
	team, err := suite.svc.CreateTeam(suite.owner.ID, &CreateTeamRequest{Name: "Platform"})
	suite.Require().NoError(err)

	member := newTestUser(suite.T(), suite.db, "member1")
	_, err = suite.svc.AddMember(team.ID, suite.owner.ID, &AddTeamMemberRequest{UserID: member.ID})
	suite.Require().NoError(err)

	updated, err := suite.svc.UpdateMember(team.ID, member.ID, suite.owner.ID, &UpdateTeamMemberRequest{
		Role: models.TeamRoleAdmin,
	})
	suite.Require().NoError(err)
	suite.Equal(models.TeamRoleAdmin, updated.Role)
}

func (suite *TeamServiceTestSuite) TestCannotDemoteLastOwner() {
	team, err := suite.svc.CreateTeam(suite.owner.ID, &CreateTeamRequest{Name: "Platform"})
	suite.Require().NoError(err)

	_, err = suite.svc.UpdateMember(team.ID, suite.owner.ID, suite.owner.ID, &UpdateTeamMemberRequest{
		Role: models.TeamRoleMember,
	})
	suite.Require().Error(err)
	suite.Equal("cannot demote the last team owner", err.Error())
}

func (suite *TeamServiceTestSuite) TestCannotRemoveLastOwner() {
	team, err := suite.svc.CreateTeam(suite.owner.ID, &CreateTeamRequest{Name: "Platform"})
	suite.Require().NoError(err)

	err = suite.svc.RemoveMember(team.ID, suite.owner.ID, suite.owner.ID)
	suite.Require().Error(err)
	suite.Equal("cannot remove the last team owner", err.Error())
}

func TestTeamServiceSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}

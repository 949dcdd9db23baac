// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/config"
	"github.com/nexcrm/crm-backend/internal/models"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.svc = NewAuthService(suite.db, &config.Config{
		Environment: "development",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	})
}

func (suite *AuthServiceTestSuite) register(username, email string) *AuthResponse {
	resp, err := suite.svc.Register(&RegisterRequest{
		Username: username,
		Email:    email,
		Password: "TestPass123!",
	})
	suite.Require().NoError(err)
	return resp
}

func (suite *AuthServiceTestSuite) TestRegisterCreatesMemberAccount() {
	resp := suite.register("grace", "grace@example.com")

	suite.Equal(models.UserRoleMember, resp.User.Role)
	suite.Equal(models.UserStatusActive, resp.User.Status)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal("Bearer", resp.TokenType)
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsDuplicateEmail() {
	suite.register("grace", "grace@example.com")

	_, err := suite.svc.Register(&RegisterRequest{
		Username: "grace2",
		Email:    "grace@example.com",
		Password: "TestPass123!",
	})
	suite.Require().Error(err)
	suite.Equal("user with this email already exists", err.Error())
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsWeakPassword() {
	_, err := suite.svc.Register(&RegisterRequest{
		Username: "grace",
		Email:    "grace@example.com",
		Password: "password",
	})
	suite.Require().Error(err)
}

func (suite *AuthServiceTestSuite) TestLoginWithWrongPasswordFails() {
	suite.register("grace", "grace@example.com")

	_, err := suite.svc.Login(&LoginRequest{
		Email:    "grace@example.com",
		Password: "WrongPass123!",
	})
	suite.Require().Error(err)
	suite.Equal("invalid email or password", err.Error())
}

func (suite *AuthServiceTestSuite) TestLoginUpdatesLastLogin() {
	resp := suite.register("grace", "grace@example.com")
	suite.Nil(resp.User.LastLoginAt)

	loginResp, err := suite.svc.Login(&LoginRequest{
		Email:    "grace@example.com",
		Password: "TestPass123!",
	})
	suite.Require().NoError(err)
	suite.NotNil(loginResp.User.LastLoginAt)
}

func (suite *AuthServiceTestSuite) TestSuspendedAccountCannotLogin() {
	resp := suite.register("grace", "grace@example.com")

	suite.Require().NoError(suite.db.Model(resp.User).
		Update("status", models.UserStatusSuspended).Error)

	_, err := suite.svc.Login(&LoginRequest{
		Email:    "grace@example.com",
		Password: "TestPass123!",
	})
	suite.Require().Error(err)
	suite.Equal("account is suspended", err.Error())
}

func (suite *AuthServiceTestSuite) TestRefreshTokenRoundTrip() {
	resp := suite.register("grace", "grace@example.com")

	refreshed, err := suite.svc.RefreshToken(resp.RefreshToken)
	suite.Require().NoError(err)
	suite.Equal(resp.User.ID, refreshed.User.ID)
	suite.NotEmpty(refreshed.AccessToken)
}

func (suite *AuthServiceTestSuite) TestChangePassword() {
	resp := suite.register("grace", "grace@example.com")

	err := suite.svc.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "TestPass123!",
		NewPassword:     "NewPass456!",
	})
	suite.Require().NoError(err)

	_, err = suite.svc.Login(&LoginRequest{
		Email:    "grace@example.com",
		Password: "NewPass456!",
	})
	suite.Require().NoError(err)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

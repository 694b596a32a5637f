package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rukibhamz/erpsolution-sub001/internal/apperrors"
	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	portssvc "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/services"
	"github.com/rukibhamz/erpsolution-sub001/internal/core/services"
	"github.com/rukibhamz/erpsolution-sub001/internal/dto"
	"github.com/rukibhamz/erpsolution-sub001/internal/platform/config"
	"github.com/rukibhamz/erpsolution-sub001/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "erp-ledger-core-test",
	})
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "alice", Name: "Alice", Password: "s3cret-pass"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "alice" &&
			u.PasswordHash != "s3cret-pass" &&
			utils.CheckPasswordHash("s3cret-pass", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, "")

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(user.UserID, user.CreatedBy) // self-registration stamps itself
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "bob",
		Name:         "Bob",
		PasswordHash: hash,
		IsActive:     true,
	}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "bob").Return(user, nil).Once()

	resp, err := suite.service.Authenticate(ctx, "bob", "correct-horse")

	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)
	suite.Equal(user.UserID, resp.UserID)

	claims, err := utils.ParseAndValidateJWT(resp.Token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	user := &domain.User{UserID: uuid.NewString(), Username: "bob", PasswordHash: hash, IsActive: true}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "bob").Return(user, nil).Once()

	_, err = suite.service.Authenticate(ctx, "bob", "wrong-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownUserMapsToUnauthorized() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Authenticate(ctx, "nobody", "whatever")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticate_InactiveUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	user := &domain.User{UserID: uuid.NewString(), Username: "carol", PasswordHash: hash, IsActive: false}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "carol").Return(user, nil).Once()

	_, err = suite.service.Authenticate(ctx, "carol", "correct-horse")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

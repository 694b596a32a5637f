package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rukibhamz/erpsolution-sub001/internal/apperrors"
	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	portssvc "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/services"
	"github.com/rukibhamz/erpsolution-sub001/internal/core/services"
	"github.com/rukibhamz/erpsolution-sub001/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockAuditSvc    *MockAuditService
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAuditSvc = new(MockAuditService)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockAuditSvc)
	suite.userID = uuid.NewString()

	suite.mockAuditSvc.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:           "1000",
		Name:           "Cash",
		AccountType:    "ASSET",
		OpeningBalance: decimal.NewFromInt(250),
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1000" && a.Balance.Equal(decimal.NewFromInt(250)) && a.IsActive && !a.IsSystem
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.True(account.Balance.Equal(account.OpeningBalance))
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_SystemAccountRefused() {
	ctx := context.Background()
	accountID := uuid.NewString()

	system := &domain.Account{AccountID: accountID, Code: "9999", IsSystem: true, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(system, nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSystemAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_WithPostingsRefused() {
	ctx := context.Background()
	accountID := uuid.NewString()

	account := &domain.Account{AccountID: accountID, Code: "1000", IsActive: true}
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("CountPostings", ctx, accountID).Return(int64(3), nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountHasPostings)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()

	account := &domain.Account{AccountID: accountID, Code: "1000", IsActive: true}
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("CountPostings", ctx, accountID).Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_AppliesPartialFields() {
	ctx := context.Background()
	accountID := uuid.NewString()

	existing := &domain.Account{AccountID: accountID, Code: "1000", Name: "Cash", Category: "current", IsActive: true}
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Petty Cash" && a.Category == "current"
	})).Return(nil).Once()

	newName := "Petty Cash"
	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Petty Cash", account.Name)
	suite.Equal("current", account.Category)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRecomputeBalance_ReturnsRepoValue() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("RecomputeBalance", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(1234), nil).Once()

	balance, err := suite.service.RecomputeBalance(ctx, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1234).Equal(balance))
}

func (suite *AccountServiceTestSuite) TestRecomputeBalance_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("RecomputeBalance", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecomputeBalance(ctx, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_ClampsLimit() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListAccounts", ctx, 20, 0).Return([]domain.Account{}, nil).Once()

	_, err := suite.service.ListAccounts(ctx, 0, -5)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

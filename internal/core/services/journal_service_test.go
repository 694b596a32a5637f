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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	mockAuditSvc    *MockAuditService
	service         portssvc.JournalSvcFacade
	cashAccount     domain.Account
	revenueAccount  domain.Account
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockAuditSvc = new(MockAuditService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockAuditSvc)

	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4000",
		AccountType: domain.Revenue,
		IsActive:    true,
	}

	// Audit recording is fire-and-forget; accept any call.
	suite.mockAuditSvc.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:        time.Now(),
		Description: "Invoice payment",
		Items: []dto.CreateJournalItemRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *JournalServiceTestSuite) expectAccounts() {
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, mock.Anything).Return(accountsMap, nil).Once()
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectAccounts()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalItem")).
		Return("JE-000042", nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal("JE-000042", entry.Reference)
	suite.Equal(domain.EntryDraft, entry.Status)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.True(decimal.NewFromInt(100).Equal(entry.TotalDebit))
	suite.True(decimal.NewFromInt(100).Equal(entry.TotalCredit))
	suite.Len(entry.Items, 2)

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Items[1].Credit = decimal.NewFromInt(90)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_MixedSignLine() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Items[0].Credit = decimal.NewFromInt(100) // both sides set

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Date:        time.Now(),
		Description: "Self transfer",
		Items: []dto.CreateJournalItemRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinAccounts)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	inactive := suite.revenueAccount
	inactive.IsActive = false
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		inactive.AccountID:          inactive,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	// Only one of the two accounts exists
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_MissingDescription() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Description = ""

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDescriptionMissing)
}

func (suite *JournalServiceTestSuite) TestApproveEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("PostEntry", ctx, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ApproveEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestApproveEntry_NotDraft() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("PostEntry", ctx, entryID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInvalidState).Once()

	err := suite.service.ApproveEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestUpdateEntryLines_RejectsPostedEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()

	posted := &domain.JournalEntry{
		EntryID:   entryID,
		Reference: "JE-000007",
		Status:    domain.EntryPosted,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	_, err := suite.service.UpdateEntryLines(ctx, entryID, dto.UpdateJournalEntryRequest{
		Items: suite.balancedRequest().Items,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReplaceEntryItems", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateEntryLines_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()

	draft := &domain.JournalEntry{
		EntryID:   entryID,
		Reference: "JE-000008",
		Status:    domain.EntryDraft,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.expectAccounts()
	suite.mockJournalRepo.On("ReplaceEntryItems", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalItem")).
		Return(nil).Once()

	entry, err := suite.service.UpdateEntryLines(ctx, entryID, dto.UpdateJournalEntryRequest{
		Items: suite.balancedRequest().Items,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(entry.Items, 2)
	suite.True(decimal.NewFromInt(100).Equal(entry.TotalDebit))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestRejectEntry_CASGoesThroughRepo() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("SetEntryStatus", ctx, entryID, domain.EntryDraft, domain.EntryRejected, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.RejectEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCancelEntry_TerminalFails() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("SetEntryStatus", ctx, entryID, domain.EntryDraft, domain.EntryCancelled, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInvalidState).Once()

	err := suite.service.CancelEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_LoadsItems() {
	ctx := context.Background()
	entryID := uuid.NewString()

	entry := &domain.JournalEntry{EntryID: entryID, Reference: "JE-000009", Status: domain.EntryDraft}
	items := []domain.JournalItem{
		{ItemID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(50)},
		{ItemID: uuid.NewString(), EntryID: entryID, AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(50)},
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindItemsByEntryID", ctx, entryID).Return(items, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().NoError(err)
	suite.Len(got.Items, 2)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

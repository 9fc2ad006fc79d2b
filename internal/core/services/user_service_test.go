package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/core/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- Register Tests ---
func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: " Asha ", Email: "Asha@Example.com", Password: "password123"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "asha@example.com" && user.Name == "Asha" &&
			user.PasswordHash != "" && user.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.AuthProviderLocal, user.AuthProvider)
	suite.True(utils.PasswordMatches(req.Password, user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_PasswordOverBcryptLimit() {
	// 25 three-byte runes pass the 72 character binding but exceed bcrypt's 72 bytes.
	req := dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: strings.Repeat("₹", 25)}

	user, err := suite.service.Register(context.Background(), req)

	suite.Nil(user)
	suite.Equal(apperrors.KindValidation, apperrors.KindOf(err))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "password123"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func (suite *UserServiceTestSuite) TestRegister_SaveError() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "password123"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, assert.AnError)
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret-pass")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: uuid.NewString(), Email: "asha@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "asha@example.com").Return(stored, nil)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.AuthenticateUser(ctx, " ASHA@example.com", "secret-pass")
	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)

	_, err = suite.service.AuthenticateUser(ctx, "asha@example.com", "wrong")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(ctx, "nobody@example.com", "secret-pass")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_GoogleAccountHasNoPassword() {
	ctx := context.Background()
	stored := &domain.User{UserID: uuid.NewString(), Email: "g@example.com", AuthProvider: domain.AuthProviderGoogle}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "g@example.com").Return(stored, nil).Once()

	_, err := suite.service.AuthenticateUser(ctx, "g@example.com", "")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedUser := &domain.User{UserID: userID, Name: "Found User"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expectedUser, nil).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestGetUserByID_RepoError() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, assert.AnError).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, assert.AnError)
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "Updated Name"
	originalUser := &domain.User{
		UserID: userID,
		Name:   "Original Name",
		AuditFields: domain.AuditFields{
			LastUpdatedAt: time.Now().Add(-time.Hour),
			LastUpdatedBy: "somebodyElse",
		},
	}
	originalTimestamp := originalUser.LastUpdatedAt

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(originalUser, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once().Run(func(args mock.Arguments) {
		userArg := args.Get(1).(domain.User)
		suite.Equal(newName, userArg.Name)
		suite.Equal(userID, userArg.LastUpdatedBy)
		suite.True(userArg.LastUpdatedAt.After(originalTimestamp))
	})

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NothingToChange() {
	ctx := context.Background()
	userID := uuid.NewString()
	originalUser := &domain.User{UserID: userID, Name: "Original"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(originalUser, nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{})

	suite.Require().NoError(err)
	suite.Equal(originalUser, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "Updated Name"

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

// --- FindOrCreateGoogleUser Tests ---
func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingLink() {
	ctx := context.Background()
	linked := &domain.User{UserID: uuid.NewString()}
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.AuthProviderGoogle, "sub-1").Return(linked, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Subject: "sub-1", Email: "a@example.com"})

	suite.Require().NoError(err)
	suite.Equal(linked, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_VerifiedEmailMatchesLocalUser() {
	ctx := context.Background()
	local := &domain.User{UserID: uuid.NewString(), Email: "a@example.com"}
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.AuthProviderGoogle, "sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@example.com").Return(local, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Subject: "sub-2", Email: "A@example.com", EmailVerified: true})

	suite.Require().NoError(err)
	suite.Equal(local.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.AuthProviderGoogle, "sub-3").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.AuthProviderGoogle && u.ProviderUserID != nil && *u.ProviderUserID == "sub-3"
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Subject: "sub-3", Email: "new@example.com", Name: "New"})

	suite.Require().NoError(err)
	suite.Equal("New", user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

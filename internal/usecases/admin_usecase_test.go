package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/volatiletech/null/v8"

	"pay-chain.backend/internal/domain/entities"
	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/internal/domain/events"
	"pay-chain.backend/internal/usecases"
)

func TestAdminUsecase_ListUsers(t *testing.T) {
	mockProfiles := new(MockUserProfileRepository)
	mockApps := new(MockSellerApplicationRepository)
	uc := usecases.NewAdminUsecase(mockProfiles, mockApps, nil, nil)

	suspended := true
	filters := entities.UserListFilters{Suspended: &suspended}
	users := []*entities.UserProfile{{UserID: uuid.New(), IsSuspended: true}}

	mockProfiles.On("List", context.Background(), filters, 0, 20).Return(users, int64(1), nil).Once()

	result, err := uc.ListUsers(context.Background(), 1, 20, filters)
	assert.NoError(t, err)
	assert.Len(t, result.Users, 1)
	assert.EqualValues(t, 1, result.Meta.TotalCount)
	assert.Equal(t, 1, result.Meta.TotalPages)
}

func TestAdminUsecase_ListApplications(t *testing.T) {
	mockProfiles := new(MockUserProfileRepository)
	mockApps := new(MockSellerApplicationRepository)
	uc := usecases.NewAdminUsecase(mockProfiles, mockApps, nil, nil)

	filters := entities.ApplicationListFilters{Status: entities.ApplicationStatusPending}
	apps := []*entities.SellerApplication{{ID: uuid.New(), Status: entities.ApplicationStatusPending}}

	mockApps.On("List", context.Background(), filters, 0, 20).Return(apps, int64(1), nil).Once()

	result, err := uc.ListApplications(context.Background(), 1, 20, filters)
	assert.NoError(t, err)
	assert.Len(t, result.Applications, 1)
}

func TestAdminUsecase_ToggleSuspension_Suspend(t *testing.T) {
	mockProfiles := new(MockUserProfileRepository)
	mockApps := new(MockSellerApplicationRepository)
	mockCache := new(MockProfileCache)
	mockBus := new(MockPublisher)
	uc := usecases.NewAdminUsecase(mockProfiles, mockApps, mockCache, mockBus)

	userID := uuid.New()
	mockProfiles.On("SetSuspension", context.Background(), userID, true, null.StringFrom("fraudulent listings")).Return(nil).Once()
	mockCache.On("Delete", context.Background(), userID).Return(nil).Once()
	mockBus.On("Publish", context.Background(), events.UserSuspended, mock.Anything).Return(nil).Once()

	err := uc.ToggleSuspension(context.Background(), userID, true, "fraudulent listings")
	assert.NoError(t, err)
	mockProfiles.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockBus.AssertExpectations(t)
}

func TestAdminUsecase_ToggleSuspension_SuspendRequiresReason(t *testing.T) {
	mockProfiles := new(MockUserProfileRepository)
	mockApps := new(MockSellerApplicationRepository)
	uc := usecases.NewAdminUsecase(mockProfiles, mockApps, nil, nil)

	err := uc.ToggleSuspension(context.Background(), uuid.New(), true, "   ")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	mockProfiles.AssertNotCalled(t, "SetSuspension", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUsecase_ToggleSuspension_UnsuspendClearsReason(t *testing.T) {
	mockProfiles := new(MockUserProfileRepository)
	mockApps := new(MockSellerApplicationRepository)
	mockBus := new(MockPublisher)
	uc := usecases.NewAdminUsecase(mockProfiles, mockApps, nil, mockBus)

	userID := uuid.New()
	mockProfiles.On("SetSuspension", context.Background(), userID, false, null.String{}).Return(nil).Once()
	mockBus.On("Publish", context.Background(), events.UserUnsuspended, mock.Anything).Return(nil).Once()

	err := uc.ToggleSuspension(context.Background(), userID, false, "")
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
}

func TestAdminUsecase_ToggleSuspension_NotFound(t *testing.T) {
	mockProfiles := new(MockUserProfileRepository)
	mockApps := new(MockSellerApplicationRepository)
	uc := usecases.NewAdminUsecase(mockProfiles, mockApps, nil, nil)

	userID := uuid.New()
	mockProfiles.On("SetSuspension", context.Background(), userID, true, null.StringFrom("spam")).Return(domainerrors.ErrNotFound).Once()

	err := uc.ToggleSuspension(context.Background(), userID, true, "spam")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAdminUsecase_UpdateRole(t *testing.T) {
	mockProfiles := new(MockUserProfileRepository)
	mockApps := new(MockSellerApplicationRepository)
	mockBus := new(MockPublisher)
	uc := usecases.NewAdminUsecase(mockProfiles, mockApps, nil, mockBus)

	userID := uuid.New()
	mockProfiles.On("UpdateRole", context.Background(), userID, entities.UserRoleSupport).Return(nil).Once()
	mockBus.On("Publish", context.Background(), events.UserRoleUpdated, mock.Anything).Return(nil).Once()

	err := uc.UpdateRole(context.Background(), userID, entities.UserRoleSupport)
	assert.NoError(t, err)
	mockProfiles.AssertExpectations(t)
}

func TestAdminUsecase_UpdateRole_InvalidRole(t *testing.T) {
	mockProfiles := new(MockUserProfileRepository)
	mockApps := new(MockSellerApplicationRepository)
	uc := usecases.NewAdminUsecase(mockProfiles, mockApps, nil, nil)

	err := uc.UpdateRole(context.Background(), uuid.New(), entities.UserRole("OVERLORD"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	mockProfiles.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUsecase_GetStatistics(t *testing.T) {
	mockProfiles := new(MockUserProfileRepository)
	mockApps := new(MockSellerApplicationRepository)
	uc := usecases.NewAdminUsecase(mockProfiles, mockApps, nil, nil)

	mockProfiles.On("CountStatistics", context.Background()).Return(&entities.ModerationStatistics{
		TotalUsers:      10,
		ActiveSellers:   3,
		VerifiedSellers: 4,
		SuspendedUsers:  1,
	}, nil).Once()
	mockApps.On("CountByStatus", context.Background(), entities.ApplicationStatusPending).Return(int64(2), nil).Once()

	stats, err := uc.GetStatistics(context.Background())
	assert.NoError(t, err)
	assert.EqualValues(t, 10, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.PendingApplications)
}

func TestAdminUsecase_GetStatistics_CountError(t *testing.T) {
	mockProfiles := new(MockUserProfileRepository)
	mockApps := new(MockSellerApplicationRepository)
	uc := usecases.NewAdminUsecase(mockProfiles, mockApps, nil, nil)

	mockProfiles.On("CountStatistics", context.Background()).Return(nil, assert.AnError).Once()

	_, err := uc.GetStatistics(context.Background())
	assert.Error(t, err)
	mockApps.AssertNotCalled(t, "CountByStatus", mock.Anything, mock.Anything)
}

package usecase

import (
	"context"
	"time"

	"ordernest/internal/domain/entity"
	"ordernest/internal/domain/repository"
	"ordernest/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type UpdateProfileInput struct {
	DisplayName  string
	Phone        string
	BusinessName string
	Preferences  map[string]bool
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.BusinessName != "" {
		if !user.IsRetailer() {
			return nil, errors.BadRequest("Only retailer accounts have a business name", nil)
		}
		user.BusinessName = input.BusinessName
	}
	if input.Preferences != nil {
		user.Preferences = input.Preferences
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return errors.NotFound("User", err)
	}

	if err := uc.firebaseAuth.UpdateUserPassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	return nil
}

// UpdateSubscription records the retailer's subscription state as reported by
// the payment collaborator. Payment processing itself happens outside.
func (uc *UserUseCase) UpdateSubscription(ctx context.Context, userID string, active bool, endDate *time.Time) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if !user.IsRetailer() {
		return nil, errors.Policy("Only retailer accounts carry a subscription", nil)
	}

	user.HasActiveSubscription = active
	user.SubscriptionEndDate = endDate
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

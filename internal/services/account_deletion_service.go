package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/S6-InstaClone/AccountService/internal/event"
	"github.com/S6-InstaClone/AccountService/internal/identity"
	"github.com/S6-InstaClone/AccountService/internal/models"
	"github.com/S6-InstaClone/AccountService/internal/repository"
)

type IAccountDeletionService interface {
	DeleteAccount(ctx context.Context, caller models.CallerIdentity) (*models.DeleteAccountResponse, error)
}

// AccountDeletionService runs the GDPR account deletion sequence: identity
// provider first, local profile next, deletion event last. Each step runs
// regardless of the previous one's outcome; once the caller is known the
// workflow always reports success, because downstream consumers clean up
// idempotently on their own.
type AccountDeletionService struct {
	identityClient identity.IIdentityProviderClient
	repo           repository.IProfileRepository
	publisher      event.IAccountDeletionPublisher
	storage        PictureDeleter
}

// PictureDeleter is the slice of picture storage the workflow needs.
type PictureDeleter interface {
	DeletePicture(ctx context.Context, pictureURL string) error
}

func NewAccountDeletionService(
	identityClient identity.IIdentityProviderClient,
	repo repository.IProfileRepository,
	publisher event.IAccountDeletionPublisher,
	storage PictureDeleter,
) IAccountDeletionService {
	return &AccountDeletionService{
		identityClient: identityClient,
		repo:           repo,
		publisher:      publisher,
		storage:        storage,
	}
}

func (s *AccountDeletionService) DeleteAccount(ctx context.Context, caller models.CallerIdentity) (*models.DeleteAccountResponse, error) {
	if caller.ExternalID == "" {
		return nil, models.ErrUnauthorized
	}

	if ok := s.identityClient.DeleteUser(ctx, caller.ExternalID); !ok {
		log.Printf("Identity provider deletion failed for %s, continuing with local cleanup", caller.ExternalID)
	}

	profile := s.removeLocalProfile(ctx, caller.ExternalID)

	deletedAt := time.Now()
	deletionEvent := event.AccountDeletionEvent{
		ID:         uuid.NewString(),
		ExternalID: caller.ExternalID,
		Username:   usernameFor(caller, profile),
		Email:      optionalString(caller.Email),
		DeletedAt:  deletedAt,
		Reason:     models.DeletionReasonGDPRRequest,
	}
	if err := s.publisher.PublishEvent(ctx, deletionEvent); err != nil {
		log.Printf("Failed to publish deletion event for %s: %v", caller.ExternalID, err)
	}

	return &models.DeleteAccountResponse{
		Message:    "account deleted",
		ExternalID: caller.ExternalID,
		DeletedAt:  deletedAt,
	}, nil
}

// removeLocalProfile deletes the caller's profile record and uploaded
// picture if they exist. Returns the profile that was removed, or nil when
// there was nothing local to clean up.
func (s *AccountDeletionService) removeLocalProfile(ctx context.Context, externalID string) *models.Profile {
	profile, err := s.repo.GetProfileByExternalID(externalID)
	if err != nil {
		if !errors.Is(err, models.ErrProfileNotFound) {
			log.Printf("Failed to look up profile for %s: %v", externalID, err)
		}
		return nil
	}

	if !profile.IsDefaultPicture() {
		if err := s.storage.DeletePicture(ctx, profile.PictureURL); err != nil {
			log.Printf("Failed to delete picture %s for %s: %v", profile.PictureURL, externalID, err)
		}
	}

	if err := s.repo.DeleteProfile(profile.ProfileID); err != nil && !errors.Is(err, models.ErrProfileNotFound) {
		log.Printf("Failed to delete profile %d for %s: %v", profile.ProfileID, externalID, err)
	}

	return profile
}

// usernameFor prefers the caller's identity claim and falls back to the
// profile that was just removed.
func usernameFor(caller models.CallerIdentity, profile *models.Profile) *string {
	if caller.Username != "" {
		return &caller.Username
	}
	if profile != nil {
		return &profile.Username
	}
	return nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/S6-InstaClone/AccountService/internal/database/minio"
	"github.com/S6-InstaClone/AccountService/internal/models"
	"github.com/S6-InstaClone/AccountService/internal/repository"
)

type IProfileService interface {
	CreateProfile(ownerExternalID string, req *models.CreateProfileRequest) (*models.Profile, error)
	GetProfileByID(profileID int64) (*models.Profile, error)
	GetMyProfile(ownerExternalID string) (*models.Profile, error)
	GetAllProfiles() ([]models.Profile, error)
	SearchProfiles(term string) ([]models.Profile, error)
	UpdateDisplayName(profileID int64, callerExternalID, displayName string) error
	UpdateDescription(profileID int64, callerExternalID string, description *string) error
	UploadPicture(ctx context.Context, profileID int64, callerExternalID string, file []byte, contentType string) (string, error)
	DeleteProfile(ctx context.Context, profileID int64, callerExternalID string) error
}

type ProfileService struct {
	repo    repository.IProfileRepository
	storage minio.IPictureStorage
}

func NewProfileService(repo repository.IProfileRepository, storage minio.IPictureStorage) IProfileService {
	return &ProfileService{
		repo:    repo,
		storage: storage,
	}
}

// CreateProfile creates the caller's profile. One profile per account: the
// repository's unique constraint backs up the check done here.
func (s *ProfileService) CreateProfile(ownerExternalID string, req *models.CreateProfileRequest) (*models.Profile, error) {
	if ownerExternalID == "" {
		return nil, models.ErrUnauthorized
	}
	if req.Username == "" || req.DisplayName == "" {
		return nil, models.ErrInvalidArgument
	}

	if _, err := s.repo.GetProfileByExternalID(ownerExternalID); err == nil {
		return nil, models.ErrProfileExists
	}

	profile := &models.Profile{
		ExternalID:  ownerExternalID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		PictureURL:  models.DefaultProfilePicture,
	}
	if req.Description != "" {
		description := req.Description
		profile.Description = &description
	}

	return s.repo.CreateProfile(profile)
}

func (s *ProfileService) GetProfileByID(profileID int64) (*models.Profile, error) {
	return s.repo.GetProfileByID(profileID)
}

func (s *ProfileService) GetMyProfile(ownerExternalID string) (*models.Profile, error) {
	if ownerExternalID == "" {
		return nil, models.ErrUnauthorized
	}
	return s.repo.GetProfileByExternalID(ownerExternalID)
}

func (s *ProfileService) GetAllProfiles() ([]models.Profile, error) {
	return s.repo.GetAllProfiles()
}

func (s *ProfileService) SearchProfiles(term string) ([]models.Profile, error) {
	return s.repo.SearchProfiles(term)
}

func (s *ProfileService) UpdateDisplayName(profileID int64, callerExternalID, displayName string) error {
	if displayName == "" {
		return models.ErrInvalidArgument
	}

	profile, err := s.ownedProfile(profileID, callerExternalID)
	if err != nil {
		return err
	}

	profile.DisplayName = displayName
	return s.repo.UpdateProfile(profile)
}

func (s *ProfileService) UpdateDescription(profileID int64, callerExternalID string, description *string) error {
	profile, err := s.ownedProfile(profileID, callerExternalID)
	if err != nil {
		return err
	}

	profile.Description = description
	return s.repo.UpdateProfile(profile)
}

// UploadPicture stores the new picture, points the profile at it and then
// removes the replaced one. Failing to remove the old picture leaves an
// orphaned object but never fails the upload.
func (s *ProfileService) UploadPicture(ctx context.Context, profileID int64, callerExternalID string, file []byte, contentType string) (string, error) {
	if len(file) == 0 {
		return "", models.ErrInvalidArgument
	}

	profile, err := s.ownedProfile(profileID, callerExternalID)
	if err != nil {
		return "", err
	}

	objectName := uuid.NewString() + extensionForContentType(contentType)
	pictureURL, err := s.storage.UploadPicture(ctx, objectName, contentType, bytes.NewReader(file), int64(len(file)))
	if err != nil {
		return "", fmt.Errorf("failed to store picture: %w", err)
	}

	previousURL := profile.PictureURL
	profile.PictureURL = pictureURL
	if err := s.repo.UpdateProfile(profile); err != nil {
		return "", err
	}

	if previousURL != models.DefaultProfilePicture {
		if err := s.storage.DeletePicture(ctx, previousURL); err != nil {
			log.Printf("Failed to delete replaced picture %s for profile %d: %v", previousURL, profileID, err)
		}
	}

	return pictureURL, nil
}

// DeleteProfile removes the caller's profile and its uploaded picture.
func (s *ProfileService) DeleteProfile(ctx context.Context, profileID int64, callerExternalID string) error {
	profile, err := s.ownedProfile(profileID, callerExternalID)
	if err != nil {
		return err
	}

	if !profile.IsDefaultPicture() {
		if err := s.storage.DeletePicture(ctx, profile.PictureURL); err != nil {
			log.Printf("Failed to delete picture %s for profile %d: %v", profile.PictureURL, profileID, err)
		}
	}

	return s.repo.DeleteProfile(profileID)
}

// ownedProfile looks the profile up before comparing owners, so a missing
// profile reports not-found rather than forbidden.
func (s *ProfileService) ownedProfile(profileID int64, callerExternalID string) (*models.Profile, error) {
	if callerExternalID == "" {
		return nil, models.ErrUnauthorized
	}

	profile, err := s.repo.GetProfileByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile.ExternalID != callerExternalID {
		return nil, models.ErrNotProfileOwner
	}
	return profile, nil
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/S6-InstaClone/AccountService/internal/event"
	"github.com/S6-InstaClone/AccountService/internal/models"
)

// in-memory stand-in for the Postgres repository
type fakeProfileRepository struct {
	profiles map[int64]*models.Profile
	nextID   int64
	failWith error
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{
		profiles: map[int64]*models.Profile{},
		nextID:   1,
	}
}

func (f *fakeProfileRepository) CreateProfile(profile *models.Profile) (*models.Profile, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, existing := range f.profiles {
		if existing.ExternalID == profile.ExternalID {
			return nil, models.ErrProfileExists
		}
	}
	stored := *profile
	stored.ProfileID = f.nextID
	f.nextID++
	f.profiles[stored.ProfileID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeProfileRepository) GetProfileByID(profileID int64) (*models.Profile, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	profile, ok := f.profiles[profileID]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileRepository) GetProfileByExternalID(externalID string) (*models.Profile, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, profile := range f.profiles {
		if profile.ExternalID == externalID {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, models.ErrProfileNotFound
}

func (f *fakeProfileRepository) GetAllProfiles() ([]models.Profile, error) {
	all := []models.Profile{}
	for _, profile := range f.profiles {
		all = append(all, *profile)
	}
	return all, nil
}

func (f *fakeProfileRepository) UpdateProfile(profile *models.Profile) error {
	if _, ok := f.profiles[profile.ProfileID]; !ok {
		return models.ErrProfileNotFound
	}
	copied := *profile
	f.profiles[profile.ProfileID] = &copied
	return nil
}

func (f *fakeProfileRepository) DeleteProfile(profileID int64) error {
	if _, ok := f.profiles[profileID]; !ok {
		return models.ErrProfileNotFound
	}
	delete(f.profiles, profileID)
	return nil
}

func (f *fakeProfileRepository) SearchProfiles(term string) ([]models.Profile, error) {
	if strings.TrimSpace(term) == "" {
		return nil, models.ErrInvalidArgument
	}
	matches := []models.Profile{}
	lowered := strings.ToLower(term)
	for _, profile := range f.profiles {
		if strings.Contains(strings.ToLower(profile.Username), lowered) ||
			strings.Contains(strings.ToLower(profile.DisplayName), lowered) {
			matches = append(matches, *profile)
		}
	}
	return matches, nil
}

// picture storage double recording uploads and deletes
type fakePictureStorage struct {
	uploads    []string
	deleted    []string
	failDelete bool
}

func (f *fakePictureStorage) UploadPicture(_ context.Context, objectName, _ string, _ io.Reader, _ int64) (string, error) {
	f.uploads = append(f.uploads, objectName)
	return "http://minio:9000/profile-pictures/" + objectName, nil
}

func (f *fakePictureStorage) DeletePicture(_ context.Context, pictureURL string) error {
	if f.failDelete {
		return fmt.Errorf("minio unavailable")
	}
	f.deleted = append(f.deleted, pictureURL)
	return nil
}

type fakeIdentityClient struct {
	result bool
	calls  []string
}

func (f *fakeIdentityClient) DeleteUser(_ context.Context, externalID string) bool {
	f.calls = append(f.calls, externalID)
	return f.result
}

type fakeDeletionPublisher struct {
	events []event.AccountDeletionEvent
	err    error
}

func (f *fakeDeletionPublisher) PublishEvent(_ context.Context, evt event.AccountDeletionEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S6-InstaClone/AccountService/internal/models"
)

func newProfileServiceWithFakes() (IProfileService, *fakeProfileRepository, *fakePictureStorage) {
	repo := newFakeProfileRepository()
	storage := &fakePictureStorage{}
	return NewProfileService(repo, storage), repo, storage
}

func createTestProfile(t *testing.T, service IProfileService, externalID, username, displayName string) *models.Profile {
	t.Helper()
	profile, err := service.CreateProfile(externalID, &models.CreateProfileRequest{
		Username:    username,
		DisplayName: displayName,
	})
	require.NoError(t, err)
	return profile
}

func TestCreateProfile_AppliesDefaults(t *testing.T) {
	service, _, _ := newProfileServiceWithFakes()

	profile := createTestProfile(t, service, "kc-1", "alice", "Alice")

	assert.Equal(t, models.DefaultProfilePicture, profile.PictureURL)
	assert.Nil(t, profile.Description)
	assert.NotZero(t, profile.ProfileID)
	assert.Equal(t, "kc-1", profile.ExternalID)
}

func TestCreateProfile_KeepsDescriptionWhenProvided(t *testing.T) {
	service, _, _ := newProfileServiceWithFakes()

	profile, err := service.CreateProfile("kc-1", &models.CreateProfileRequest{
		Username:    "alice",
		DisplayName: "Alice",
		Description: "hello there",
	})
	require.NoError(t, err)
	require.NotNil(t, profile.Description)
	assert.Equal(t, "hello there", *profile.Description)
}

func TestCreateProfile_OneProfilePerAccount(t *testing.T) {
	service, _, _ := newProfileServiceWithFakes()
	createTestProfile(t, service, "kc-1", "alice", "Alice")

	_, err := service.CreateProfile("kc-1", &models.CreateProfileRequest{
		Username:    "alice2",
		DisplayName: "Alice Again",
	})

	assert.ErrorIs(t, err, models.ErrProfileExists)
}

func TestCreateProfile_RequiresCallerAndFields(t *testing.T) {
	service, _, _ := newProfileServiceWithFakes()

	_, err := service.CreateProfile("", &models.CreateProfileRequest{Username: "a", DisplayName: "b"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = service.CreateProfile("kc-1", &models.CreateProfileRequest{DisplayName: "b"})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestMutations_RequireOwnership(t *testing.T) {
	service, _, _ := newProfileServiceWithFakes()
	profile := createTestProfile(t, service, "kc-1", "alice", "Alice")

	description := "mine now"
	mutations := map[string]func() error{
		"display name": func() error {
			return service.UpdateDisplayName(profile.ProfileID, "kc-2", "Mallory")
		},
		"description": func() error {
			return service.UpdateDescription(profile.ProfileID, "kc-2", &description)
		},
		"delete": func() error {
			return service.DeleteProfile(context.Background(), profile.ProfileID, "kc-2")
		},
		"picture": func() error {
			_, err := service.UploadPicture(context.Background(), profile.ProfileID, "kc-2", []byte{1}, "image/png")
			return err
		},
	}

	for name, mutate := range mutations {
		assert.ErrorIs(t, mutate(), models.ErrNotProfileOwner, "mutation %q by a non-owner must be forbidden", name)
	}
}

func TestMutations_MissingProfileBeatsOwnership(t *testing.T) {
	service, _, _ := newProfileServiceWithFakes()

	err := service.UpdateDisplayName(42, "kc-1", "Ghost")
	assert.ErrorIs(t, err, models.ErrProfileNotFound)

	err = service.DeleteProfile(context.Background(), 42, "kc-1")
	assert.ErrorIs(t, err, models.ErrProfileNotFound)
}

func TestUploadPicture_FirstUploadSkipsDelete(t *testing.T) {
	service, repo, storage := newProfileServiceWithFakes()
	profile := createTestProfile(t, service, "kc-1", "alice", "Alice")

	url, err := service.UploadPicture(context.Background(), profile.ProfileID, "kc-1", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, models.DefaultProfilePicture, url)

	// sentinel picture has no stored object behind it
	assert.Empty(t, storage.deleted)

	stored, err := repo.GetProfileByID(profile.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.PictureURL)
}

func TestUploadPicture_ReplacementDeletesPreviousExactlyOnce(t *testing.T) {
	service, _, storage := newProfileServiceWithFakes()
	profile := createTestProfile(t, service, "kc-1", "alice", "Alice")

	firstURL, err := service.UploadPicture(context.Background(), profile.ProfileID, "kc-1", []byte("one"), "image/png")
	require.NoError(t, err)

	_, err = service.UploadPicture(context.Background(), profile.ProfileID, "kc-1", []byte("two"), "image/png")
	require.NoError(t, err)

	require.Len(t, storage.deleted, 1)
	assert.Equal(t, firstURL, storage.deleted[0])
}

func TestUploadPicture_OldPictureDeleteFailureDoesNotFailUpload(t *testing.T) {
	service, repo, storage := newProfileServiceWithFakes()
	profile := createTestProfile(t, service, "kc-1", "alice", "Alice")

	_, err := service.UploadPicture(context.Background(), profile.ProfileID, "kc-1", []byte("one"), "image/png")
	require.NoError(t, err)

	storage.failDelete = true
	secondURL, err := service.UploadPicture(context.Background(), profile.ProfileID, "kc-1", []byte("two"), "image/png")
	require.NoError(t, err)

	stored, err := repo.GetProfileByID(profile.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, secondURL, stored.PictureURL)
}

func TestUploadPicture_RejectsEmptyFile(t *testing.T) {
	service, _, _ := newProfileServiceWithFakes()
	profile := createTestProfile(t, service, "kc-1", "alice", "Alice")

	_, err := service.UploadPicture(context.Background(), profile.ProfileID, "kc-1", nil, "image/png")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestDeleteProfile_RemovesUploadedPicture(t *testing.T) {
	service, _, storage := newProfileServiceWithFakes()
	profile := createTestProfile(t, service, "kc-1", "alice", "Alice")

	url, err := service.UploadPicture(context.Background(), profile.ProfileID, "kc-1", []byte("one"), "image/png")
	require.NoError(t, err)

	require.NoError(t, service.DeleteProfile(context.Background(), profile.ProfileID, "kc-1"))
	assert.Contains(t, storage.deleted, url)
}

func TestProfileLifecycle(t *testing.T) {
	service, _, _ := newProfileServiceWithFakes()

	profile := createTestProfile(t, service, "kc-1", "alice", "Alice")
	assert.Equal(t, "default_pr_pic", profile.PictureURL)

	require.NoError(t, service.UpdateDisplayName(profile.ProfileID, "kc-1", "Alicia"))

	updated, err := service.GetProfileByID(profile.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.DisplayName)
	assert.Equal(t, "alice", updated.Username)

	err = service.DeleteProfile(context.Background(), profile.ProfileID, "kc-2")
	assert.ErrorIs(t, err, models.ErrNotProfileOwner)

	require.NoError(t, service.DeleteProfile(context.Background(), profile.ProfileID, "kc-1"))

	_, err = service.GetProfileByID(profile.ProfileID)
	assert.ErrorIs(t, err, models.ErrProfileNotFound)
}

func TestSearchProfiles_MatchesSubstringCaseInsensitive(t *testing.T) {
	service, _, _ := newProfileServiceWithFakes()
	createTestProfile(t, service, "kc-1", "alice", "Alice")
	createTestProfile(t, service, "kc-2", "malice", "Mallory")
	createTestProfile(t, service, "kc-3", "bob", "Bobby")

	matches, err := service.SearchProfiles("ALi")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = service.SearchProfiles("nobody")
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = service.SearchProfiles("")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGetMyProfile(t *testing.T) {
	service, _, _ := newProfileServiceWithFakes()
	createTestProfile(t, service, "kc-1", "alice", "Alice")

	profile, err := service.GetMyProfile("kc-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	_, err = service.GetMyProfile("kc-9")
	assert.ErrorIs(t, err, models.ErrProfileNotFound)

	_, err = service.GetMyProfile("")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestCreateProfile_PropagatesStorageError(t *testing.T) {
	repo := newFakeProfileRepository()
	storageErr := errors.New("connection refused")
	repo.failWith = storageErr
	service := NewProfileService(repo, &fakePictureStorage{})

	_, err := service.CreateProfile("kc-1", &models.CreateProfileRequest{Username: "a", DisplayName: "b"})
	assert.ErrorIs(t, err, storageErr)
}

package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/S6-InstaClone/AccountService/internal/models"
	"github.com/S6-InstaClone/AccountService/pkg/utils"
)

type IProfileRepository interface {
	CreateProfile(profile *models.Profile) (*models.Profile, error)
	GetProfileByID(profileID int64) (*models.Profile, error)
	GetProfileByExternalID(externalID string) (*models.Profile, error)
	GetAllProfiles() ([]models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	DeleteProfile(profileID int64) error
	SearchProfiles(term string) ([]models.Profile, error)
}

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) IProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func (r *ProfileRepository) CreateProfile(profile *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (
			external_id,
			username,
			display_name,
			description,
			picture_url
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING profile_id
	`

	err := r.db.QueryRow(
		query,
		profile.ExternalID,
		profile.Username,
		profile.DisplayName,
		profile.Description,
		profile.PictureURL,
	).Scan(&profile.ProfileID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, models.ErrProfileExists
		}
		log.Printf("Error creating profile for external id %s: %v", profile.ExternalID, err)
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) GetProfileByID(profileID int64) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Get(&profile, "SELECT * FROM profiles WHERE profile_id = $1", profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProfileNotFound
		}
		log.Printf("Error fetching profile %d: %v", profileID, err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) GetProfileByExternalID(externalID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Get(&profile, "SELECT * FROM profiles WHERE external_id = $1", externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProfileNotFound
		}
		log.Printf("Error fetching profile by external id %s: %v", externalID, err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) GetAllProfiles() ([]models.Profile, error) {
	profiles := []models.Profile{}
	err := r.db.Select(&profiles, "SELECT * FROM profiles ORDER BY profile_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) UpdateProfile(profile *models.Profile) error {
	query := `
		UPDATE profiles SET
			username = $1,
			display_name = $2,
			description = $3,
			picture_url = $4
		WHERE profile_id = $5
	`

	err := utils.ExecWithCheck(
		r.db,
		query,
		utils.ExecUpdate,
		profile.Username,
		profile.DisplayName,
		profile.Description,
		profile.PictureURL,
		profile.ProfileID,
	)
	if err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return models.ErrProfileNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) DeleteProfile(profileID int64) error {
	err := utils.ExecWithCheck(r.db, "DELETE FROM profiles WHERE profile_id = $1", utils.ExecDelete, profileID)
	if err != nil {
		if errors.Is(err, utils.ErrNoRowsAffected) {
			return models.ErrProfileNotFound
		}
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// SearchProfiles matches the term case-insensitively as a substring of the
// username or display name. An empty term is rejected rather than listing
// everything.
func (r *ProfileRepository) SearchProfiles(term string) ([]models.Profile, error) {
	if strings.TrimSpace(term) == "" {
		return nil, models.ErrInvalidArgument
	}

	pattern := "%" + escapeLikePattern(term) + "%"
	profiles := []models.Profile{}
	query := `
		SELECT * FROM profiles
		WHERE username ILIKE $1 OR display_name ILIKE $1
		ORDER BY profile_id
	`
	err := r.db.Select(&profiles, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	return profiles, nil
}

// escapeLikePattern keeps user input from acting as LIKE wildcards.
func escapeLikePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

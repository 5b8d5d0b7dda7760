package repositories

import (
	"context"
	"fmt"
	"time"

	"codetrek/internal/common"
	"codetrek/internal/models"

	"github.com/jmoiron/sqlx"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	Update(ctx context.Context, profile *models.UserProfile) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `SELECT p.id, p.user_id, u.username, p.bio, p.preferred_language, p.skill_level, p.updated_at
              FROM user_profiles p JOIN users u ON u.id = p.user_id
              WHERE p.user_id = ?`

	var profile models.UserProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("profile for user %d: %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET bio = ?, preferred_language = ?, skill_level = ?, updated_at = ? WHERE user_id = ?`,
		profile.Bio, profile.PreferredLanguage, profile.SkillLevel, profile.UpdatedAt, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile for user %d: %w", profile.UserID, common.ErrNotFound)
	}
	return nil
}

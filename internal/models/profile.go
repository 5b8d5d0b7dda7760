package models

import (
	"time"

	"codetrek/internal/common"
)

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

type UserProfile struct {
	ID                int64     `db:"id" json:"id"`
	UserID            int64     `db:"user_id" json:"user"`
	Username          string    `db:"username" json:"username"`
	Bio               string    `db:"bio" json:"bio"`
	PreferredLanguage string    `db:"preferred_language" json:"preferred_language"`
	SkillLevel        string    `db:"skill_level" json:"skill_level"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileUpdate carries the writable profile fields; nil fields are left as is.
type ProfileUpdate struct {
	Bio               *string `json:"bio"`
	PreferredLanguage *string `json:"preferred_language"`
	SkillLevel        *string `json:"skill_level"`
}

func (u *ProfileUpdate) Validate() error {
	if u.SkillLevel == nil || *u.SkillLevel == "" {
		return nil
	}
	switch *u.SkillLevel {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return nil
	}
	return common.NewValidationError("skill_level", "skill_level must be one of beginner, intermediate, advanced")
}

// Apply copies the non-nil fields onto p.
func (u *ProfileUpdate) Apply(p *UserProfile) {
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.PreferredLanguage != nil {
		p.PreferredLanguage = *u.PreferredLanguage
	}
	if u.SkillLevel != nil {
		p.SkillLevel = *u.SkillLevel
	}
}

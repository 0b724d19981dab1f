package domain

import "time"

// UserProfile is the payload of GET /api/profile.
type UserProfile struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// UpdateProfileRequest is the body of POST /api/profile/update.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	FullName       *string `json:"fullName"`
	Email          *string `json:"email"`
	ProfilePicture *string `json:"profilePicture"`
}

// UpdateProfileResponse is the reply to POST /api/profile/update.
type UpdateProfileResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Profile *UserProfile `json:"profile,omitempty"`
}

// ProfileModel is the GORM model for profiles table.
type ProfileModel struct {
	ID             string    `gorm:"type:varchar(36);primaryKey"`
	FullName       string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	ProfilePicture string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts ProfileModel to UserProfile.
func (m *ProfileModel) ToDomain() *UserProfile {
	return &UserProfile{
		ID:             m.ID,
		FullName:       m.FullName,
		Email:          m.Email,
		ProfilePicture: m.ProfilePicture,
		JoinedAt:       m.CreatedAt,
	}
}

// ProfileToModel converts UserProfile to ProfileModel.
func ProfileToModel(p *UserProfile) *ProfileModel {
	return &ProfileModel{
		ID:             p.ID,
		FullName:       p.FullName,
		Email:          p.Email,
		ProfilePicture: p.ProfilePicture,
		CreatedAt:      p.JoinedAt,
	}
}

package domain

import "time"

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountSummary is the public view of a registered account.
type AccountSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// SignupResponse is the reply to POST /api/signup.
type SignupResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	User    AccountSummary `json:"user"`
}

// Account is a registered account.
type Account struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// AccountModel is the GORM model for accounts table.
type AccountModel struct {
	ID           string    `gorm:"type:varchar(36);primaryKey"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToSummary converts Account to its public view.
func (a *Account) ToSummary() AccountSummary {
	return AccountSummary{ID: a.ID, FullName: a.FullName, Email: a.Email}
}

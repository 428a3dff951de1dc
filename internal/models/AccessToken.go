package models

import "time"

// AccessToken records an issued JWT by its jti so it can be revoked before
// it expires.
type AccessToken struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *AccessToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsValid reports whether the token is neither expired nor revoked.
func (t *AccessToken) IsValid() bool {
	return !t.Revoked && !t.IsExpired()
}

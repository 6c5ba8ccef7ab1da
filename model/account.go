package model

import "time"

/*

Account is the credential record behind a session. It is intentionally kept
apart from Profile: an account exists from sign-up, while a profile only
exists after the first profile-setup submission.

Id: primary key, also the id of the user's Profile once created
Email: sign-in email, unique
Username: handle chosen at sign-up
PasswordHash: bcrypt hash of the sign-up password
*/
type Account struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	Email        string `gorm:"uniqueIndex"`
	Username     string
	PasswordHash string
}

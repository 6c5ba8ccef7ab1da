package model

import (
	"time"

	"github.com/lib/pq"
)

/*

Profile is a student's public profile card.

Id: primary key, shared with the auth account of the same user
CreatedAt: time when entity is created
UpdatedAt: time of the last profile-setup submission

Username: short handle derived from the email local part at first setup
FullName: display name
Department: free text department name
Email: contact email, mirrored from the auth account
AboutMe: free text bio
SoftSkills: ordered list of soft-skill strings
TechnicalSkills: ordered list of technical-skill strings
Achievements: free text achievements
AvatarUrl: public URL of the uploaded avatar, empty when never set

A profile is created at the first profile-setup submission (upsert), mutated
only by its owner and never hard-deleted by the application.
*/
type Profile struct {
	Id              string `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Username        string
	FullName        string
	Department      string
	Email           string
	AboutMe         string
	SoftSkills      pq.StringArray `gorm:"type:text[]"`
	TechnicalSkills pq.StringArray `gorm:"type:text[]"`
	Achievements    string
	AvatarUrl       string
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Feedback struct {
	ID                  string    `gorm:"type:text;primary_key" json:"id"`
	CharacterName       *string   `json:"character_name,omitempty"`
	Server              *string   `json:"server,omitempty"`
	IsAnonymous         bool      `gorm:"not null;default:false" json:"is_anonymous"`
	RatingMechanics     int       `gorm:"not null" json:"rating_mechanics"`
	RatingDamage        int       `gorm:"not null" json:"rating_damage"`
	RatingTeamwork      int       `gorm:"not null" json:"rating_teamwork"`
	RatingCommunication int       `gorm:"not null" json:"rating_communication"`
	RatingOverall       int       `gorm:"not null" json:"rating_overall"`
	Comments            *string   `json:"comments,omitempty"`
	ContentType         *string   `json:"content_type,omitempty"`
	PlayerJob           *string   `json:"player_job,omitempty"`
	IPAddress           string    `gorm:"not null;index" json:"-"`
	CreatedAt           time.Time `gorm:"not null;index" json:"created_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

func (Feedback) TableName() string {
	return "feedback"
}

// AverageRating is the mean of the five rating fields.
func (f *Feedback) AverageRating() float64 {
	sum := f.RatingMechanics + f.RatingDamage + f.RatingTeamwork +
		f.RatingCommunication + f.RatingOverall
	return float64(sum) / 5.0
}

// DisplayName is the reviewer line shown in the admin panel and Discord.
func (f *Feedback) DisplayName() string {
	if f.IsAnonymous {
		return "Anonymous"
	}
	switch {
	case f.CharacterName != nil && f.Server != nil:
		return *f.CharacterName + " @ " + *f.Server
	case f.CharacterName != nil:
		return *f.CharacterName
	default:
		return "Unknown"
	}
}

// FeedbackSubmission is the POST /submit form payload. The anonymity
// checkbox arrives as "on"/"true"/"1" when checked and is absent otherwise,
// so it binds as a string and is normalized by Anonymous().
type FeedbackSubmission struct {
	CharacterName       string `form:"character_name"`
	Server              string `form:"server"`
	IsAnonymous         string `form:"is_anonymous"`
	RatingMechanics     int    `form:"rating_mechanics" binding:"required,min=1,max=5"`
	RatingDamage        int    `form:"rating_damage" binding:"required,min=1,max=5"`
	RatingTeamwork      int    `form:"rating_teamwork" binding:"required,min=1,max=5"`
	RatingCommunication int    `form:"rating_communication" binding:"required,min=1,max=5"`
	RatingOverall       int    `form:"rating_overall" binding:"required,min=1,max=5"`
	Comments            string `form:"comments"`
	ContentType         string `form:"content_type"`
	PlayerJob           string `form:"player_job"`
}

func (s *FeedbackSubmission) Anonymous() bool {
	switch s.IsAnonymous {
	case "true", "on", "1":
		return true
	}
	return false
}

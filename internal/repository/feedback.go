package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/finalfeedback/finalfeedback/internal/models"
	"github.com/finalfeedback/finalfeedback/internal/storage"
)

type FeedbackRepository struct {
	db *storage.SQLite
}

func NewFeedbackRepository(db *storage.SQLite) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.DB.WithContext(ctx).Create(feedback).Error
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&feedback).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &feedback, err
}

func (r *FeedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&feedbacks).Error

	return feedbacks, err
}

// Delete removes a submission and reports whether it existed.
func (r *FeedbackRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Feedback{})

	return result.RowsAffected > 0, result.Error
}

func (r *FeedbackRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.Feedback{}).
		Count(&count).Error

	return count, err
}

// AverageOverall returns the mean overall rating, or 0 with no rows.
func (r *FeedbackRepository) AverageOverall(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.DB.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("AVG(rating_overall)").
		Scan(&avg).Error

	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

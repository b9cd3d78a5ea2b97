package repository

import (
	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/pkg/logger"
	"gorm.io/gorm"
)

type LikeRepository interface {
	Exists(userID, cafeID uint) (bool, error)
	Create(like *model.Like) error
	Delete(userID, cafeID uint) error
	FindCafesByUser(userID uint) ([]model.Cafe, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(userID, cafeID uint) (bool, error) {
	logger.Debug("Checking like in database", map[string]interface{}{
		"user_id": userID,
		"cafe_id": cafeID,
	})

	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND cafe_id = ?", userID, cafeID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check like in database", err, map[string]interface{}{
			"user_id": userID,
			"cafe_id": cafeID,
		})
		return false, err
	}

	return count > 0, nil
}

// Create inserts the pair; an existing pair fails on the primary key
func (r *likeRepository) Create(like *model.Like) error {
	logger.Debug("Creating like in database", map[string]interface{}{
		"user_id": like.UserID,
		"cafe_id": like.CafeID,
	})

	if err := r.db.Omit("User", "Cafe").Create(like).Error; err != nil {
		logger.Error("Failed to create like in database", err, map[string]interface{}{
			"user_id": like.UserID,
			"cafe_id": like.CafeID,
		})
		return err
	}

	return nil
}

// Delete removes the pair, returning gorm.ErrRecordNotFound when it is absent
func (r *likeRepository) Delete(userID, cafeID uint) error {
	logger.Debug("Deleting like from database", map[string]interface{}{
		"user_id": userID,
		"cafe_id": cafeID,
	})

	result := r.db.Where("user_id = ? AND cafe_id = ?", userID, cafeID).Delete(&model.Like{})
	if result.Error != nil {
		logger.Error("Failed to delete like from database", result.Error, map[string]interface{}{
			"user_id": userID,
			"cafe_id": cafeID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// FindCafesByUser returns the cafes a user likes, ordered by name
func (r *likeRepository) FindCafesByUser(userID uint) ([]model.Cafe, error) {
	logger.Debug("Finding liked cafes in database", map[string]interface{}{
		"user_id": userID,
	})

	var cafes []model.Cafe
	err := r.db.
		Preload("City").
		Joins("JOIN likes ON likes.cafe_id = cafes.id").
		Where("likes.user_id = ?", userID).
		Order("cafes.name ASC").
		Find(&cafes).Error
	if err != nil {
		logger.Error("Failed to find liked cafes in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Liked cafes found in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(cafes),
	})
	return cafes, nil
}

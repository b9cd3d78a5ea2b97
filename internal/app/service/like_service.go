package service

import (
	"errors"

	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/app/repository"
	apperrors "github.com/ikkim/cafe-backend/internal/errors"
	"github.com/ikkim/cafe-backend/pkg/logger"
)

var ErrLikeNotFound = errors.New("like not found")

type LikeService interface {
	IsLiked(userID, cafeID uint) (bool, error)
	Like(userID, cafeID uint) error
	Unlike(userID, cafeID uint) error
	LikedCafes(userID uint) ([]model.Cafe, error)
}

type likeService struct {
	likeRepo repository.LikeRepository
	cafeRepo repository.CafeRepository
}

func NewLikeService(likeRepo repository.LikeRepository, cafeRepo repository.CafeRepository) LikeService {
	return &likeService{
		likeRepo: likeRepo,
		cafeRepo: cafeRepo,
	}
}

func (s *likeService) ensureCafe(cafeID uint) error {
	if _, err := s.cafeRepo.FindByID(cafeID); err != nil {
		if apperrors.IsNotFound(err) {
			return ErrCafeNotFound
		}
		return err
	}
	return nil
}

func (s *likeService) IsLiked(userID, cafeID uint) (bool, error) {
	if err := s.ensureCafe(cafeID); err != nil {
		return false, err
	}
	return s.likeRepo.Exists(userID, cafeID)
}

// Like does not guard against an existing like; the duplicate insert fails
// on the primary key and the error is returned as is.
func (s *likeService) Like(userID, cafeID uint) error {
	if err := s.ensureCafe(cafeID); err != nil {
		return err
	}

	if err := s.likeRepo.Create(&model.Like{UserID: userID, CafeID: cafeID}); err != nil {
		logger.Error("Failed to like cafe", err, map[string]interface{}{
			"user_id": userID,
			"cafe_id": cafeID,
		})
		return err
	}

	logger.Info("Cafe liked", map[string]interface{}{
		"user_id": userID,
		"cafe_id": cafeID,
	})
	return nil
}

// Unlike returns ErrLikeNotFound when the user did not like the cafe
func (s *likeService) Unlike(userID, cafeID uint) error {
	if err := s.ensureCafe(cafeID); err != nil {
		return err
	}

	if err := s.likeRepo.Delete(userID, cafeID); err != nil {
		if apperrors.IsNotFound(err) {
			logger.Warn("Unlike failed: like not found", map[string]interface{}{
				"user_id": userID,
				"cafe_id": cafeID,
			})
			return ErrLikeNotFound
		}
		return err
	}

	logger.Info("Cafe unliked", map[string]interface{}{
		"user_id": userID,
		"cafe_id": cafeID,
	})
	return nil
}

func (s *likeService) LikedCafes(userID uint) ([]model.Cafe, error) {
	return s.likeRepo.FindCafesByUser(userID)
}

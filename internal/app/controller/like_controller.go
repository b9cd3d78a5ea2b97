package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/cafe-backend/internal/app/service"
	apperrors "github.com/ikkim/cafe-backend/internal/errors"
	"github.com/ikkim/cafe-backend/internal/middleware"
)

type LikeController struct {
	likeService service.LikeService
}

func NewLikeController(likeService service.LikeService) *LikeController {
	return &LikeController{
		likeService: likeService,
	}
}

type LikeRequest struct {
	CafeID uint `json:"cafe_id" binding:"required"`
}

// Check handles GET /api/likes?cafe_id=
func (ctrl *LikeController) Check(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	cafeID, err := strconv.ParseUint(c.Query("cafe_id"), 10, 64)
	if err != nil || cafeID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "cafe_id must be a positive integer")
		return
	}

	liked, err := ctrl.likeService.IsLiked(user.ID, uint(cafeID))
	if err != nil {
		respondLikeError(c, err, uint(cafeID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": liked})
}

// Like handles POST /api/like
func (ctrl *LikeController) Like(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid like request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "cafe_id is required")
		return
	}

	if err := ctrl.likeService.Like(user.ID, req.CafeID); err != nil {
		respondLikeError(c, err, req.CafeID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": req.CafeID})
}

// Unlike handles POST /api/unlike
func (ctrl *LikeController) Unlike(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid unlike request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "cafe_id is required")
		return
	}

	if err := ctrl.likeService.Unlike(user.ID, req.CafeID); err != nil {
		respondLikeError(c, err, req.CafeID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unliked": req.CafeID})
}

// respondLikeError maps an unknown cafe to 404. Everything else, including a
// duplicate like or a missing unlike, is a server error.
func respondLikeError(c *gin.Context, err error, cafeID uint) {
	if errors.Is(err, service.ErrCafeNotFound) {
		apperrors.NotFound(c, apperrors.CafeNotFound, "Cafe not found")
		return
	}

	middleware.GetLoggerFromContext(c).Error("Like request failed", err, map[string]interface{}{
		"cafe_id": cafeID,
	})
	_ = c.Error(err)
	apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "like cafe")
}

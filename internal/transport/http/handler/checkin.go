package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bpmutter/tappdin-backend/internal/app"
	"github.com/bpmutter/tappdin-backend/internal/transport/http/response"
)

type CheckinHandler struct {
	checkinService *app.CheckinService
}

type CreateCheckinRequest struct {
	BeerID uint   `json:"beerId" binding:"required,gt=0"`
	Rating int    `json:"rating" binding:"required,gte=1,lte=5"`
	Review string `json:"review" binding:"omitempty,max=2048"`
}

func NewCheckinHandler(checkinService *app.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinService: checkinService}
}

func (h *CheckinHandler) CreateCheckin(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req CreateCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	checkin, err := h.checkinService.CreateCheckin(app.CreateCheckinInput{
		UserID: userID,
		BeerID: req.BeerID,
		Rating: req.Rating,
		Review: req.Review,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrRatingOutOfRange):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrBeerNotFound):
			response.Error(c, http.StatusNotFound, response.CodeBeerNotFound, err.Error())
		case errors.Is(err, app.ErrCheckinEnqueue):
			response.Error(c, http.StatusServiceUnavailable, response.CodeInternalServer, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create checkin failed")
		}
		return
	}

	response.Created(c, gin.H{"checkin": checkin})
}

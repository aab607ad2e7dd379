package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bpmutter/tappdin-backend/internal/app"
	"github.com/bpmutter/tappdin-backend/internal/transport/http/response"
)

type BeerHandler struct {
	beerService *app.BeerService
}

type SearchBeersRequest struct {
	Query string `json:"query" binding:"required,max=128"`
}

func NewBeerHandler(beerService *app.BeerService) *BeerHandler {
	return &BeerHandler{beerService: beerService}
}

func (h *BeerHandler) ListBeers(c *gin.Context) {
	beers, err := h.beerService.ListBeers()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list beers failed")
		return
	}
	response.OK(c, gin.H{"beers": beers})
}

func (h *BeerHandler) TopRated(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	topBeers, err := h.beerService.TopRated(limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list top beers failed")
		return
	}
	response.OK(c, gin.H{"topBeers": topBeers})
}

func (h *BeerHandler) GetBeer(c *gin.Context) {
	beerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.beerService.GetBeer(beerID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrBeerNotFound):
			response.Error(c, http.StatusNotFound, response.CodeBeerNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch beer failed")
		}
		return
	}

	response.OK(c, detail)
}

func (h *BeerHandler) ListByBrewery(c *gin.Context) {
	breweryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	beers, err := h.beerService.ListByBrewery(breweryID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list brewery beers failed")
		return
	}
	response.OK(c, gin.H{"beers": beers})
}

func (h *BeerHandler) DeleteBeer(c *gin.Context) {
	beerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.beerService.DeleteBeer(beerID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrBeerNotFound):
			response.Error(c, http.StatusNotFound, response.CodeBeerNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete beer failed")
		}
		return
	}

	response.OK(c, gin.H{
		"msg":         "The beer is no longer available!",
		"deletedBeer": deleted,
	})
}

func (h *BeerHandler) SearchBeers(c *gin.Context) {
	var req SearchBeersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	results, err := h.beerService.Search(req.Query)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "search beers failed")
		}
		return
	}
	response.OK(c, gin.H{"results": results})
}

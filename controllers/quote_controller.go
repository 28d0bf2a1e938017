package controllers

import (
	"log"
	"net/http"

	"github.com/umarmrv/bima-calc-api/models"
	"github.com/umarmrv/bima-calc-api/services"
	"github.com/umarmrv/bima-calc-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuoteController struct {
	service *services.QuoteService
}

func NewQuoteController(service *services.QuoteService) *QuoteController {
	return &QuoteController{service: service}
}

// POST /quotes
func (qc *QuoteController) CreateQuote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorMessage(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.QuoteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[CREATE_QUOTE] invalid request body: %v", err)
		utils.ErrorMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	quote, err := qc.service.CreateQuote(userID, req)
	if err != nil {
		log.Printf("[CREATE_QUOTE] user_id=%d tariff=%s rejected: %v", userID, req.Tariff, err)
		respondServiceError(c, err)
		return
	}

	log.Printf("[CREATE_QUOTE] user_id=%d quote=%s tariff=%s total=%s", userID, quote.ID, quote.Tariff, quote.TotalAmount)
	c.JSON(http.StatusCreated, quote)
}

// GET /quotes/:id
func (qc *QuoteController) GetQuote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorMessage(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// кривой uuid неотличим от несуществующего id
		utils.ErrorJSON(c, http.StatusNotFound, map[string]string{"id": "quote not found"})
		return
	}

	quote, err := qc.service.GetQuote(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// GET /quotes
func (qc *QuoteController) ListQuotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorMessage(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	quotes, err := qc.service.ListQuotes(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

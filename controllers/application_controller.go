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

type ApplicationController struct {
	service *services.ApplicationService
}

func NewApplicationController(service *services.ApplicationService) *ApplicationController {
	return &ApplicationController{service: service}
}

// POST /applications
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorMessage(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[CREATE_APPLICATION] invalid request body: %v", err)
		utils.ErrorMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	quoteID, err := uuid.Parse(req.Quote)
	if err != nil {
		utils.ErrorJSON(c, http.StatusBadRequest, map[string]string{"quote": "must be a valid quote id"})
		return
	}

	app, err := ac.service.CreateApplication(userID, quoteID, req)
	if err != nil {
		log.Printf("[CREATE_APPLICATION] user_id=%d quote=%s rejected: %v", userID, quoteID, err)
		respondServiceError(c, err)
		return
	}

	log.Printf("[CREATE_APPLICATION] user_id=%d application=%s quote=%s amount=%s", userID, app.ID, app.QuoteID, app.TotalAmountSnapshot)
	c.JSON(http.StatusCreated, app)
}

// GET /applications/:id
func (ac *ApplicationController) GetApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorMessage(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorJSON(c, http.StatusNotFound, map[string]string{"id": "application not found"})
		return
	}

	app, err := ac.service.GetApplication(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// GET /applications
func (ac *ApplicationController) ListApplications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorMessage(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	apps, err := ac.service.ListApplications(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/umarmrv/bima-calc-api/services"
	"github.com/umarmrv/bima-calc-api/utils"

	"github.com/gin-gonic/gin"
)

// currentUserID достаёт id пользователя, положенный JWT middleware
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	if !ok || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// respondServiceError переводит доменные ошибки движков в единое тело
// ошибки; всё неизвестное — 500 с пустыми details
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		utils.ErrorJSON(c, http.StatusBadRequest, vErr.Fields)
		return
	}
	var fErr *services.ForbiddenError
	if errors.As(err, &fErr) {
		utils.ErrorJSON(c, http.StatusForbidden, map[string]string{fErr.Field: fErr.Message})
		return
	}
	var nErr *services.NotFoundError
	if errors.As(err, &nErr) {
		utils.ErrorJSON(c, http.StatusNotFound, map[string]string{nErr.Field: nErr.Message})
		return
	}
	var cErr *services.ConflictError
	if errors.As(err, &cErr) {
		utils.ErrorJSON(c, http.StatusConflict, map[string]string{cErr.Field: cErr.Message})
		return
	}
	utils.LogError(err, "service call")
	utils.ErrorMessage(c, http.StatusInternalServerError, "internal server error")
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	apperrors "github.com/ninesuite/ninesuite-backend/internal/pkg/errors"
	"github.com/ninesuite/ninesuite-backend/internal/requestdata"
	"github.com/ninesuite/ninesuite-backend/internal/services"
)

type RatingHandler struct {
	log           *logger.Logger
	ratingService services.RatingService
}

func NewRatingHandler(log *logger.Logger, ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{
		log:           log.With("handler", "RatingHandler"),
		ratingService: ratingService,
	}
}

type calculateRatingRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
}

// Calculate runs a fresh two-axis calculation without persisting anything.
// The UI shows the result and collects an optional override before the save
// endpoint archives it.
func (h *RatingHandler) Calculate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.CompanyID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "missing_company", nil)
		return
	}
	var req calculateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := h.ratingService.Calculate(c.Request.Context(), rd.CompanyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("Calculate failed", "error", err, "employee_id", req.EmployeeID)
		RespondError(c, http.StatusInternalServerError, "calculation_failed", err)
		return
	}
	RespondOK(c, result)
}

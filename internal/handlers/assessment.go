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

type AssessmentHandler struct {
	log               *logger.Logger
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(log *logger.Logger, assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		log:               log.With("handler", "AssessmentHandler"),
		assessmentService: assessmentService,
	}
}

type saveAssessmentRequest struct {
	AssessmentID              *uuid.UUID `json:"assessment_id,omitempty"`
	EmployeeID                uuid.UUID  `json:"employee_id" binding:"required"`
	IsOverridePerformance     bool       `json:"is_override_performance"`
	IsOverridePotential       bool       `json:"is_override_potential"`
	OverrideReasonPerformance string     `json:"override_reason_performance"`
	OverrideReasonPotential   string     `json:"override_reason_potential"`
	OverridePerformanceBand   *int       `json:"override_performance_band,omitempty"`
	OverridePotentialBand     *int       `json:"override_potential_band,omitempty"`
	Finalize                  bool       `json:"finalize"`
}

func (h *AssessmentHandler) Save(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.CompanyID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "missing_company", nil)
		return
	}
	var req saveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := h.assessmentService.SaveAssessment(c.Request.Context(), services.SaveAssessmentInput{
		AssessmentID:              req.AssessmentID,
		CompanyID:                 rd.CompanyID,
		EmployeeID:                req.EmployeeID,
		IsOverridePerformance:     req.IsOverridePerformance,
		IsOverridePotential:       req.IsOverridePotential,
		OverrideReasonPerformance: req.OverrideReasonPerformance,
		OverrideReasonPotential:   req.OverrideReasonPotential,
		OverridePerformanceBand:   req.OverridePerformanceBand,
		OverridePotentialBand:     req.OverridePotentialBand,
		Finalize:                  req.Finalize,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			RespondError(c, http.StatusNotFound, "assessment_not_found", err)
		case errors.Is(err, apperrors.ErrInvalidArgument):
			RespondError(c, http.StatusBadRequest, "invalid_request", err)
		case errors.Is(err, apperrors.ErrNoEvidence):
			RespondError(c, http.StatusUnprocessableEntity, "no_evidence", err)
		default:
			h.log.Error("Save assessment failed", "error", err, "employee_id", req.EmployeeID)
			RespondError(c, http.StatusInternalServerError, "save_assessment_failed", err)
		}
		return
	}
	RespondOK(c, result)
}

func (h *AssessmentHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.CompanyID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "missing_company", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	assessment, evidence, err := h.assessmentService.GetAssessment(c.Request.Context(), rd.CompanyID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "assessment_not_found", err)
			return
		}
		h.log.Error("Get assessment failed", "error", err, "id", id)
		RespondError(c, http.StatusInternalServerError, "load_assessment_failed", err)
		return
	}
	RespondOK(c, gin.H{"assessment": assessment, "evidence": evidence})
}

func (h *AssessmentHandler) ListByEmployee(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.CompanyID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "missing_company", nil)
		return
	}
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	assessments, err := h.assessmentService.ListByEmployee(c.Request.Context(), rd.CompanyID, employeeID)
	if err != nil {
		h.log.Error("List assessments failed", "error", err, "employee_id", employeeID)
		RespondError(c, http.StatusInternalServerError, "load_assessments_failed", err)
		return
	}
	RespondOK(c, gin.H{"assessments": assessments})
}

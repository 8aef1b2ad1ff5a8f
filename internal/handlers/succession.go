package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	apperrors "github.com/ninesuite/ninesuite-backend/internal/pkg/errors"
	"github.com/ninesuite/ninesuite-backend/internal/rating"
	"github.com/ninesuite/ninesuite-backend/internal/requestdata"
	"github.com/ninesuite/ninesuite-backend/internal/services"
)

type SuccessionHandler struct {
	log               *logger.Logger
	successionService services.SuccessionService
}

func NewSuccessionHandler(log *logger.Logger, successionService services.SuccessionService) *SuccessionHandler {
	return &SuccessionHandler{
		log:               log.With("handler", "SuccessionHandler"),
		successionService: successionService,
	}
}

type linkEvidenceRequest struct {
	SourceAssessmentID *uuid.UUID `json:"source_assessment_id,omitempty"`
	Signals            []struct {
		Name            string  `json:"name"`
		Category        string  `json:"category"`
		NormalizedScore float64 `json:"normalized_score"`
	} `json:"signals"`
	ReadinessContribution float64 `json:"readiness_contribution"`
}

func (h *SuccessionHandler) LinkEvidence(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.CompanyID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "missing_company", nil)
		return
	}
	candidateID, err := uuid.Parse(c.Param("candidateId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req linkEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	signals := make([]rating.SignalEvidence, 0, len(req.Signals))
	for _, sig := range req.Signals {
		signals = append(signals, rating.SignalEvidence{
			Name:            sig.Name,
			Category:        sig.Category,
			NormalizedScore: sig.NormalizedScore,
		})
	}
	evidence, err := h.successionService.LinkEvidence(c.Request.Context(), services.LinkEvidenceInput{
		CandidateID:           candidateID,
		CompanyID:             rd.CompanyID,
		SourceAssessmentID:    req.SourceAssessmentID,
		Signals:               signals,
		ReadinessContribution: req.ReadinessContribution,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			RespondError(c, http.StatusNotFound, "candidate_not_found", err)
		case errors.Is(err, apperrors.ErrInvalidArgument):
			RespondError(c, http.StatusBadRequest, "invalid_request", err)
		default:
			h.log.Error("Link succession evidence failed", "error", err, "candidate_id", candidateID)
			RespondError(c, http.StatusInternalServerError, "link_evidence_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"succession_evidence": evidence})
}

func (h *SuccessionHandler) ListEvidence(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.CompanyID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "missing_company", nil)
		return
	}
	candidateID, err := uuid.Parse(c.Param("candidateId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	evidence, err := h.successionService.ListEvidence(c.Request.Context(), rd.CompanyID, candidateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "candidate_not_found", err)
			return
		}
		h.log.Error("List succession evidence failed", "error", err, "candidate_id", candidateID)
		RespondError(c, http.StatusInternalServerError, "load_evidence_failed", err)
		return
	}
	RespondOK(c, gin.H{"succession_evidence": evidence})
}

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

type SourceConfigHandler struct {
	log      *logger.Logger
	registry services.SourceRegistryService
}

func NewSourceConfigHandler(log *logger.Logger, registry services.SourceRegistryService) *SourceConfigHandler {
	return &SourceConfigHandler{
		log:      log.With("handler", "SourceConfigHandler"),
		registry: registry,
	}
}

func (h *SourceConfigHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.CompanyID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "missing_company", nil)
		return
	}
	axis := rating.Axis(c.Query("axis"))
	configs, err := h.registry.ListActiveSources(c.Request.Context(), rd.CompanyID, axis)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			RespondError(c, http.StatusBadRequest, "invalid_axis", err)
			return
		}
		h.log.Error("List source configs failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_source_configs_failed", err)
		return
	}
	RespondOK(c, gin.H{"source_configs": configs})
}

func (h *SourceConfigHandler) Upsert(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.CompanyID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "missing_company", nil)
		return
	}
	var in services.UpsertSourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in.CompanyID = rd.CompanyID
	config, err := h.registry.UpsertSource(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			RespondError(c, http.StatusNotFound, "source_config_not_found", err)
		case errors.Is(err, apperrors.ErrInvalidArgument):
			RespondError(c, http.StatusBadRequest, "invalid_request", err)
		default:
			h.log.Error("Upsert source config failed", "error", err)
			RespondError(c, http.StatusInternalServerError, "upsert_source_config_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"source_config": config})
}

func (h *SourceConfigHandler) Delete(c *gin.Context) {
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
	if err := h.registry.DeleteSource(c.Request.Context(), rd.CompanyID, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "source_config_not_found", err)
			return
		}
		h.log.Error("Delete source config failed", "error", err, "id", id)
		RespondError(c, http.StatusInternalServerError, "delete_source_config_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

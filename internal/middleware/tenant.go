package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/requestdata"
)

// TenantMiddleware scopes every request to a company. Authentication lives
// upstream of this service; by the time a request reaches us the gateway has
// already verified the caller and stamped the tenant headers.
type TenantMiddleware struct {
	log *logger.Logger
}

func NewTenantMiddleware(log *logger.Logger) *TenantMiddleware {
	middlewareLog := log.With("middleware", "TenantMiddleware")
	return &TenantMiddleware{log: middlewareLog}
}

func (tm *TenantMiddleware) RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, err := uuid.Parse(c.GetHeader("X-Company-ID"))
		if err != nil || companyID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid company id"})
			return
		}
		rd := &requestdata.RequestData{CompanyID: companyID}
		if userID, err := uuid.Parse(c.GetHeader("X-User-ID")); err == nil {
			rd.UserID = userID
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), rd)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

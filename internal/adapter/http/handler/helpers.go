package handler

import (
	"ramp-gateway/internal/adapter/http/dto"
	"ramp-gateway/internal/adapter/http/middleware"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/pkg/apperror"
	"ramp-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// caller returns the authenticated caller or writes AUTH_001.
func caller(c *gin.Context) (domain.Caller, bool) {
	who, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return domain.Caller{}, false
	}
	return who, true
}

// bindJSON binds, validates and sanitizes the request body.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	dto.SanitizeStruct(req)
	return true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid id: must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// parseToken parses a token symbol case-insensitively.
func parseToken(c *gin.Context, raw string) (domain.Token, bool) {
	tok, ok := domain.ParseToken(raw)
	if !ok {
		response.Error(c, apperror.ErrUnsupportedToken(raw))
		return "", false
	}
	return tok, true
}

// parseAmount parses a required decimal amount field.
func parseAmount(c *gin.Context, field, raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount(field+" must be a decimal number"))
		return decimal.Zero, false
	}
	return d, true
}

// parseOptionalAmount treats an empty string as absent.
func parseOptionalAmount(c *gin.Context, field, raw string) (*decimal.Decimal, bool) {
	if raw == "" {
		return nil, true
	}
	d, ok := parseAmount(c, field, raw)
	if !ok {
		return nil, false
	}
	return &d, true
}

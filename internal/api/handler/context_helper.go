package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/api/middleware"
	"github.com/benitha200/cherryapp-backend/internal/dto"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// MustGetUserID extracts the authenticated user id.
// Writes a 401 and returns false when JWTAuth did not run; callers return immediately.
func MustGetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, 10002, "not authenticated")
		return 0, false
	}
	return id, true
}

// MustGetCaller user id, role and station of the authenticated user
func MustGetCaller(c *gin.Context) (dto.Caller, bool) {
	id, ok := MustGetUserID(c)
	if !ok {
		return dto.Caller{}, false
	}
	caller := dto.Caller{UserID: id, Role: c.GetString(middleware.CtxRole)}
	if v, exists := c.Get(middleware.CtxCWSID); exists {
		caller.CWSID, _ = v.(*uint)
	}
	return caller, true
}

// tokenInfo jti and expiry of the access token on the request
func tokenInfo(c *gin.Context) (string, time.Time) {
	exp, _ := c.Get(middleware.CtxTokenExp)
	t, _ := exp.(time.Time)
	return c.GetString(middleware.CtxTokenJTI), t
}

// parseUintParam reads a positive numeric path parameter, writing a 400 otherwise
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		response.BadRequest(c, 10001, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}

// bindFailed reports a binding error as a validation failure
func bindFailed(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
}

// respondError maps application errors onto the response envelope
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	appErr, ok := apperr.As(err)
	if !ok {
		response.InternalError(c)
		return
	}

	switch appErr.Kind {
	case apperr.KindValidation, apperr.KindBusinessRule:
		response.BadRequest(c, appErr.Code, appErr.Message)
	case apperr.KindNotFound:
		response.NotFound(c, appErr.Code, appErr.Message)
	case apperr.KindUnauthorized:
		response.Unauthorized(c, appErr.Code, appErr.Message)
	case apperr.KindForbidden:
		response.Forbidden(c, appErr.Code, appErr.Message)
	default:
		details := ""
		if appErr.Err != nil {
			details = appErr.Err.Error()
		}
		response.ErrorWithDetails(c, http.StatusInternalServerError, appErr.Code, appErr.Message, details)
	}
}

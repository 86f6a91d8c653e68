package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/requestdata"
)

type APIError struct {
  Message     string	`json:"message"`
  Code	      string	`json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error	      APIError	`json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the service error taxonomy onto HTTP statuses.
func RespondServiceError(c *gin.Context, err error) {
  status, code := statusFromErr(err)
  RespondError(c, status, code, err)
}

func statusFromErr(err error) (int, string) {
  switch {
  case errors.Is(err, pkgerrors.ErrInvalidArgument):
    return http.StatusBadRequest, "invalid_argument"
  case errors.Is(err, pkgerrors.ErrUnauthorized):
    return http.StatusUnauthorized, "unauthorized"
  case errors.Is(err, pkgerrors.ErrForbidden):
    return http.StatusForbidden, "forbidden"
  case errors.Is(err, pkgerrors.ErrNotFound):
    return http.StatusNotFound, "not_found"
  case errors.Is(err, pkgerrors.ErrDailyLimitReached):
    return http.StatusTooManyRequests, "daily_limit_reached"
  }
  return http.StatusInternalServerError, "internal"
}

// currentUserID pulls the authenticated user from the request context. The
// auth middleware guarantees it for protected routes; the fallback guards
// misrouted handlers.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
    return uuid.Nil, false
  }
  return rd.UserID, true
}

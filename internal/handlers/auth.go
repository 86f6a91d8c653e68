package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/studysarthi/studysarthi-backend/internal/services"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

type AuthHandler struct {
  authService   services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

type registerRequest struct {
  Email       string    `json:"email"`
  Password    string    `json:"password"`
  FirstName   string    `json:"first_name"`
  LastName    string    `json:"last_name"`
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req registerRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
    return
  }
  user := &types.User{
    Email:     req.Email,
    Password:  req.Password,
    FirstName: req.FirstName,
    LastName:  req.LastName,
  }
  if err := ah.authService.RegisterUser(c.Request.Context(), user); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true, "user": user})
}

type loginRequest struct {
  Email       string    `json:"email"`
  Password    string    `json:"password"`
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req loginRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
    return
  }
  token, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "token":      token,
    "expires_in": int(ah.authService.GetAccessTTL().Seconds()),
  })
}

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fintrack/internal/service"
	"fintrack/internal/storage"
)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	images   storage.ImageStore
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, images storage.ImageStore) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		images:   images,
	}
}

// Register maneja POST /api/v1/register (JSON o multipart con imagen opcional).
func (h *AuthHandler) Register(c *gin.Context) {
	input, ok := h.bindRegister(c)
	if !ok {
		return
	}

	token, err := h.authServ.Register(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "user already exists"})
		default:
			h.logger.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "message": "registration successful"})
}

func (h *AuthHandler) bindRegister(c *gin.Context) (service.RegisterInput, bool) {
	var input service.RegisterInput

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		input.Name = c.PostForm("name")
		input.Email = c.PostForm("email")
		input.Password = c.PostForm("password")
		input.ConfirmPassword = c.PostForm("confirmPassword")

		file, err := c.FormFile("profile")
		if err == nil && file != nil && h.images != nil {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid profile image"})
				return service.RegisterInput{}, false
			}
			defer src.Close()
			ref, err := h.images.Save(c.Request.Context(), file.Filename, src)
			if err != nil {
				h.logger.Error("profile image save failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
				return service.RegisterInput{}, false
			}
			input.ProfileImage = ref
		}
		return input, true
	}

	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return service.RegisterInput{}, false
	}
	input.Name = req.Name
	input.Email = req.Email
	input.Password = req.Password
	input.ConfirmPassword = req.ConfirmPassword
	return input, true
}

// Login maneja POST /api/v1/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	token, err := h.authServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid credentials"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "message": "login successful"})
}

// Profile maneja GET /api/v1/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "access denied"})
		return
	}

	user, err := h.authServ.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	// la referencia interna se traduce a una URL servible antes de responder
	if user.ProfileImage != "" && h.images != nil {
		if url, err := h.images.URL(c.Request.Context(), user.ProfileImage); err == nil {
			user.ProfileImage = url
		}
	}

	c.JSON(http.StatusOK, user)
}

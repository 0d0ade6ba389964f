package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service *Service
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service) *AuthController {
	return &AuthController{service: service}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/register", ac.Register)
	router.POST("/auth/token", ac.Token)
	router.POST("/auth/logout", ac.Logout)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new user identity. No token is issued.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	_, err := ac.service.Register(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.String(http.StatusOK, "registered")
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrEmailRequired),
		errors.Is(err, ErrPasswordRequired),
		errors.Is(err, ErrEmailInvalid),
		errors.Is(err, ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Token implements the OAuth2 password grant. Accepts form-encoded
// grant_type, username, and password fields.
func (ac *AuthController) Token(c *gin.Context) {
	if c.PostForm("grant_type") != "password" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported grant type"})
		return
	}

	resp, err := ac.service.Authenticate(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		log.Printf("token grant failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Logout revokes the presented bearer token. All resolution failures map to
// 400 with a uniform body.
func (ac *AuthController) Logout(c *gin.Context) {
	token := BearerToken(c.Request)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or malformed token"})
		return
	}

	err := ac.service.Logout(c.Request.Context(), token)
	switch {
	case err == nil:
		c.String(http.StatusOK, "logged out")
	case errors.Is(err, ErrMalformedToken),
		errors.Is(err, ErrTokenNotFound),
		errors.Is(err, ErrTokenNotActive):
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not revoke token"})
	default:
		log.Printf("logout failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

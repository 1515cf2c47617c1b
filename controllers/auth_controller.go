package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shoppit/models"
	"shoppit/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register godoc
// @Summary Register new user
// @Description Register an account. Email is the login identifier.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	resp, err := ctrl.auth.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Registration successful",
		"data":    resp,
	})
}

// Login godoc
// @Summary User login
// @Description Login with email and password.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	resp, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Login failed"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    resp,
	})
}

// GetUsername godoc
// @Summary Current username
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /get_username [get]
func (ctrl *AuthController) GetUsername(c *gin.Context) {
	c.JSON(200, gin.H{"username": c.GetString("username")})
}

// UserInfo godoc
// @Summary Current user info
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Router /user_info [get]
func (ctrl *AuthController) UserInfo(c *gin.Context) {
	userID := c.GetInt("user_id")

	user, err := ctrl.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, user)
}

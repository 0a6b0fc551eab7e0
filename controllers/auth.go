package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ooyyss26/product-api/models"
	"github.com/ooyyss26/product-api/service"
)

type authController struct {
	tokens   service.TokenService
	username string
	password string
}

// NewAuthController serves the open routes: the service index and the login
// endpoint issuing bearer tokens for the fixed credential pair.
func NewAuthController(tokens service.TokenService, username, password string) Controller {
	return &authController{
		tokens:   tokens,
		username: username,
		password: password,
	}
}

func (a *authController) Register(r *gin.Engine) {
	r.GET("/", a.Index)
	r.GET("/login", a.LoginInfo)
	r.POST("/login", a.Login)
}

func (a *authController) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "product-api",
		"message": "POST /login to obtain a token, then use the /products endpoints",
	})
}

func (a *authController) LoginInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "POST username and password to obtain a token",
	})
}

func (a *authController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON data required"})
		return
	}

	if req.Username != a.username || req.Password != a.password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := a.tokens.Issue(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{AccessToken: token})
}

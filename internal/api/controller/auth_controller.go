package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupath/edupath-backend/internal/auth"
	"github.com/edupath/edupath-backend/internal/logger"
	"github.com/edupath/edupath-backend/internal/store"
)

// AuthController exchanges admin credentials for a session token. The check
// happens server-side; the client never sees the credential table.
type AuthController struct {
	Auth  *auth.Service
	Store *store.Store
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid login payload"})
		return
	}

	token, user, err := ac.Auth.Login(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}
		logger.WithComponent("controller").Errorf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
		return
	}

	if _, err := ac.Store.Dispatch(store.Action{Type: store.LoginAdmin, User: user.DisplayName}); err != nil {
		logger.WithComponent("controller").Warnf("login dispatch failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"isAdmin": true,
		"user": gin.H{
			"username": user.Username,
			"name":     user.DisplayName,
			"role":     user.Role,
		},
	})
}

// Logout handles POST /auth/logout.
func (ac *AuthController) Logout(c *gin.Context) {
	if _, err := ac.Store.Dispatch(store.Action{Type: store.LogoutAdmin}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

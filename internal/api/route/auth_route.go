package route

import (
	"github.com/gin-gonic/gin"

	"github.com/edupath/edupath-backend/internal/api/controller"
	"github.com/edupath/edupath-backend/internal/app"
)

func NewAuthRouter(group *gin.RouterGroup, a *app.App) {
	ac := &controller.AuthController{Auth: a.Auth, Store: a.Store}

	group.POST("/auth/login", ac.Login)
	group.POST("/auth/logout", ac.Logout)
}

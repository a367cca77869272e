package routes

import (
	"time"

	"rewear/app"
	"rewear/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	itemCtl := controllers.NewItemController(s)
	exCtl := controllers.NewExchangeController(s)
	catCtl := controllers.NewCategoryController(s)
	uc := controllers.GetUserController(s.Repo, s.AppSess, a.Config)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo, a.Config)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 认证
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authCtl.Signup)
		auth.POST("/signin", authCtl.Signin)
		auth.POST("/signout", authCtl.Signout)
		auth.GET("/user", authMW, seenMW, authCtl.Me)
	}

	// ------------------------------
	// 类目
	// ------------------------------
	cats := r.Group("/api/categories")
	{
		cats.GET("", catCtl.ListCategories)
		cats.POST("", authMW, adminMW, catCtl.CreateCategory)
	}

	// ------------------------------
	// 物品
	// ------------------------------
	items := r.Group("/api/items")
	{
		items.GET("", itemCtl.ListItems)
		items.GET("/:id", itemCtl.GetItem)
		items.POST("", authMW, seenMW, itemCtl.CreateItem)
		items.PATCH("/:id/availability", authMW, seenMW, itemCtl.SetAvailability)
	}

	// ------------------------------
	// 交换（核心）
	// ------------------------------
	exchanges := r.Group("/api/exchanges", authMW, seenMW)
	{
		exchanges.POST("", exCtl.Propose)
		exchanges.GET("", exCtl.ListExchanges)
		exchanges.GET("/:id", exCtl.GetExchange)
		exchanges.PATCH("/:id", exCtl.SetStatus)
	}

	// ------------------------------
	// 用户管理（仅管理员）
	// ------------------------------
	users := r.Group("/api/users", authMW, adminMW)
	{
		users.GET("", uc.ListUsers)
		users.GET("/:id", uc.GetUser)
		users.DELETE("/:id", uc.DeleteUser)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"rewear/app"
	"rewear/config"
	"rewear/db"
	"rewear/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	app.BootstrapFirstAdmin(context.Background(), application.Config, db.NewRepo(application.DB))

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}

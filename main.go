package main

import (
	"log"

	"Gin_memory_redis_rental_catalog/app"
	"Gin_memory_redis_rental_catalog/config"
	"Gin_memory_redis_rental_catalog/routes"
)

func main() {
	config.LoadEnv()
	application := app.MustNew()
	defer application.Close()

	routes.RegisterRoutes(application.Router, application)

	port := application.Config.Port
	log.Printf("listening on :%s", port)
	if err := application.Router.Run(":" + port); err != nil {
		log.Printf("server stopped: %v", err)
	}
}

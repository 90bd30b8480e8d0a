package main

import (
	"log"
	"os"

	"github.com/sheltweezy/digestlibrary/config"
	"github.com/sheltweezy/digestlibrary/routes"
	"github.com/sheltweezy/digestlibrary/utils"
)

func main() {
	db := config.InitDB()

	photos, err := utils.NewPhotoStoreFromEnv()
	if err != nil {
		log.Fatalf("Failed to set up photo store: %v", err)
	}

	r := routes.SetupRouter(db, photos)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

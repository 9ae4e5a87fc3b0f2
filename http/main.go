package main

import (
	"log"

	"github.com/KacperKuznik/image-hosting-api/config"
	"github.com/KacperKuznik/image-hosting-api/http/controller"
	routes "github.com/KacperKuznik/image-hosting-api/http/route"
	infraPkg "github.com/KacperKuznik/image-hosting-api/infra"
	"github.com/KacperKuznik/image-hosting-api/repository"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Printf("HTTP Server started on %s", cfg.EnvConfig.ServerAddr)
	if err := router.Run(cfg.EnvConfig.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

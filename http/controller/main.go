package controller

import (
	"github.com/KacperKuznik/image-hosting-api/access"
	"github.com/KacperKuznik/image-hosting-api/config"
	"github.com/KacperKuznik/image-hosting-api/infra"
	"github.com/KacperKuznik/image-hosting-api/policy"
	"github.com/KacperKuznik/image-hosting-api/repository"
	"github.com/KacperKuznik/image-hosting-api/thumbnail"
	"github.com/KacperKuznik/image-hosting-api/token"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Gate       *access.Gate
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}

	gate := access.NewGate(
		repository.NewStore(repo),
		infra.Minio,
		thumbnail.NewDeriver(infra.Minio),
		token.NewCodec(config.EnvConfig.Link.SigningKey),
		policy.NewResolver(repo.TierRepo, infra.Redis),
		infra.Produce.CleanupService,
		config.EnvConfig.Link.BaseURL,
	)

	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
		Gate:       gate,
	}
}

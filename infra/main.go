package infra

import (
	"github.com/KacperKuznik/image-hosting-api/config"
	"github.com/KacperKuznik/image-hosting-api/infra/produce"
)

type Infra struct {
	Postgres *PostgresClient
	Redis    *RedisClient
	RabbitMQ *RabbitMQClient
	Minio    *MinioClient
	Logger   *LoggerClient
	Produce  *produce.Produce
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	minio := InitMinioClient(cfg.EnvConfig)
	if minio == nil {
		panic("Failed to initialize MinIO service")
	}

	produceService := produce.InitProduce(rabbitMQ.Channel)
	if produceService == nil {
		panic("Failed to initialize Produce service")
	}

	infraInstance = &Infra{
		Postgres: postgres,
		Redis:    redis,
		RabbitMQ: rabbitMQ,
		Minio:    minio,
		Logger:   logger,
		Produce:  produceService,
	}

	return infraInstance
}

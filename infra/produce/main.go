package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	CleanupService *CleanupService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	cleanupService := InitCleanupService(channel)
	if cleanupService == nil {
		panic("Failed to initialize Cleanup service")
	}

	produceInstance = &Produce{
		CleanupService: cleanupService,
	}

	return produceInstance
}

package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// PublishMessage публикует сообщение в обменник с указанным ключом маршрутизации.
func PublishMessage(ch *amqp.Channel, exchange, routingkey string, message []byte) error {
	const op = "rabbitmq.PublishMessage"

	err := ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         message,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

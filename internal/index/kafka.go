package index

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// IndexActionTopic is the kafka topic holding pending index actions.
var IndexActionTopic = "index-actions"

var _ Queue = (*KafkaQueue)(nil)

// KafkaQueue is a kafka backed work queue for index actions.
type KafkaQueue struct {
	producer *kafka.Producer
	consumer *kafka.Consumer
}

func NewKafkaQueue(brokers, group string) (*KafkaQueue, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return nil, err
	}

	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"group.id":          group,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		producer.Close()
		return nil, err
	}

	if err := consumer.SubscribeTopics([]string{IndexActionTopic}, nil); err != nil {
		producer.Close()
		_ = consumer.Close()
		return nil, err
	}

	return &KafkaQueue{producer: producer, consumer: consumer}, nil
}

func (k *KafkaQueue) Enqueue(ctx context.Context, action Action) error {
	payload, err := json.Marshal(action)
	if err != nil {
		return err
	}

	delivery := make(chan kafka.Event, 1)
	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &IndexActionTopic, Partition: kafka.PartitionAny},
		Key:            []byte(action.UUID),
		Value:          payload,
	}, delivery)
	if err != nil {
		return err
	}

	select {
	case event := <-delivery:
		if msg, ok := event.(*kafka.Message); ok && msg.TopicPartition.Error != nil {
			return msg.TopicPartition.Error
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (k *KafkaQueue) Dequeue(ctx context.Context) (*Action, error) {
	msg, err := k.consumer.ReadMessage(time.Second)
	if err != nil {
		var kerr kafka.Error
		if errors.As(err, &kerr) && kerr.Code() == kafka.ErrTimedOut {
			return nil, nil
		}
		return nil, err
	}

	action := &Action{}
	if err := json.Unmarshal(msg.Value, action); err != nil {
		return nil, err
	}

	return action, nil
}

func (k *KafkaQueue) Close() error {
	k.producer.Close()
	return k.consumer.Close()
}

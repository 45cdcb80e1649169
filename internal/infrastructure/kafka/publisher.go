package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type Publisher struct {
	writer         *kafka.Writer
	injectionTopic string
	orderTopic     string
}

func NewPublisher(brokers []string, injectionTopic, orderTopic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		injectionTopic: injectionTopic,
		orderTopic:     orderTopic,
	}
}

func (p *Publisher) publish(topic string, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
}

func (p *Publisher) PublishInjectionEvent(event InjectionEvent) error {
	return p.publish(p.injectionTopic, event.OrderID, event)
}

func (p *Publisher) PublishOrderEvent(event OrderLifecycleEvent) error {
	return p.publish(p.orderTopic, event.OrderID, event)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

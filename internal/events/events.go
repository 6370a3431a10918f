package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/searchandrescuegg/lifeline/internal/dispatch"
)

// Publisher streams dispatch lifecycle events to a Pulsar topic for
// downstream consumers (dashboards, audit).
type Publisher struct {
	client   pulsar.Client
	producer pulsar.Producer
}

func NewPublisher(url, topic string) (*Publisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL: url,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return &Publisher{
		client:   client,
		producer: producer,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, ev dispatch.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch event: %w", err)
	}

	_, err = p.producer.Send(ctx, &pulsar.ProducerMessage{
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to send dispatch event: %w", err)
	}

	return nil
}

func (p *Publisher) Close() {
	if p.producer != nil {
		p.producer.Close()
	}
	if p.client != nil {
		p.client.Close()
	}
}

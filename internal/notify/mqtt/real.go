package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"shopfloor/internal/storage"
)

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client paho.Client
	topics Topics
}

func NewRealPublisher(broker, clientID, prefix string) (*RealPublisher, error) {
	const op = "notify.mqtt.NewRealPublisher"

	if clientID == "" {
		clientID = "shopfloor"
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("%s: connection timeout", op)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%s: connect to broker: %w", op, err)
	}

	return &RealPublisher{
		client: client,
		topics: Topics{Prefix: prefix},
	}, nil
}

func (p *RealPublisher) PublishEvent(ev storage.Event) error {
	const op = "notify.mqtt.PublishEvent"

	payload, err := FormatPayload(ev)
	if err != nil {
		return fmt.Errorf("%s: format payload: %w", op, err)
	}

	// QoS 0, the dashboard is the source of truth
	if err := p.publish(p.topics.Events(), 0, payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if IsAlert(ev) {
		// QoS 1, an adjuster must hear about the call
		if err := p.publish(p.topics.Alert(ev.StationID), 1, payload); err != nil {
			return fmt.Errorf("%s: alert: %w", op, err)
		}
	}

	return nil
}

func (p *RealPublisher) publish(topic string, qos byte, payload []byte) error {
	token := p.client.Publish(topic, qos, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish %s timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}

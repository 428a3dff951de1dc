package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

const (
	MealCreated  = "created"
	MealUpdated  = "updated"
	MealDeleted  = "deleted"
	MealImported = "imported"
)

// MealEvent is the JSON payload published for every meal change.
type MealEvent struct {
	Event  string    `json:"event"`
	MealID uint      `json:"meal_id,omitempty"`
	Name   string    `json:"name,omitempty"`
	Count  int       `json:"count,omitempty"`
	At     time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event MealEvent) error
	Close()
}

// Topic returns "<prefix>/meals/<event>".
func Topic(prefix, event string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return "meals/" + event
	}
	return prefix + "/meals/" + event
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, MealEvent) error { return nil }
func (NopPublisher) Close()                                    {}

type MQTTPublisher struct {
	client  mqtt.Client
	prefix  string
	timeout time.Duration
}

// NewMQTTPublisher connects to broker and fails if the broker does not
// accept the connection within timeout.
func NewMQTTPublisher(broker, clientID, prefix string, timeout time.Duration) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(timeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logrus.WithError(err).Warn("MQTT connection lost")
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		client.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect to %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}

	logrus.WithField("broker", broker).Info("Connected to MQTT broker")
	return &MQTTPublisher{client: client, prefix: prefix, timeout: timeout}, nil
}

func (p *MQTTPublisher) Publish(ctx context.Context, event MealEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	token := p.client.Publish(Topic(p.prefix, event.Event), 1, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.timeout):
		return errors.New("mqtt publish timed out")
	}
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// New returns an MQTT publisher when broker is set and a NopPublisher
// otherwise.
func New(broker, clientID, prefix string) (Publisher, error) {
	if broker == "" {
		logrus.Info("MQTT_BROKER not set, meal events disabled")
		return NopPublisher{}, nil
	}
	return NewMQTTPublisher(broker, clientID, prefix, 5*time.Second)
}

// Package publisher pushes weekly energy metrics to an MQTT broker so home
// automation dashboards can chart them.
package publisher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/theirongolddev/wattboard/internal/config"
	"github.com/theirongolddev/wattboard/internal/ledger"
)

// Client is the subset of mqtt.Client the publisher needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	IsConnected() bool
	Disconnect(quiesce uint)
}

// Publisher writes retained metric topics under a prefix.
type Publisher struct {
	client      Client
	topicPrefix string
	timeout     time.Duration
}

// WeekState is the JSON document published to <prefix>/<scope>/state.
type WeekState struct {
	Days      map[string]float64 `json:"days"`
	Metrics   ledger.Metrics     `json:"metrics"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// New connects to the configured broker.
func New(cfg config.Config) (*Publisher, error) {
	m := cfg.MQTT
	if m.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required")
	}

	broker := m.Broker
	if !strings.Contains(broker, "://") {
		broker = "tcp://" + broker
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(m.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)
	if m.Username != "" {
		opts.SetUsername(m.Username)
	}
	if pw := config.GetMQTTPassword(cfg); pw != "" {
		opts.SetPassword(pw)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return NewWithClient(client, m.TopicPrefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client Client, topicPrefix string) *Publisher {
	topicPrefix = strings.Trim(topicPrefix, "/")
	if topicPrefix == "" {
		topicPrefix = "wattboard"
	}
	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
		timeout:     5 * time.Second,
	}
}

// Topic joins the prefix and parts.
func (p *Publisher) Topic(parts ...string) string {
	return p.topicPrefix + "/" + strings.Join(parts, "/")
}

// PublishWeek publishes the full state document plus one topic per metric
// and per day, all retained. scope separates sessions, e.g. "week" or a
// session id.
func (p *Publisher) PublishWeek(scope string, l *ledger.Ledger) error {
	m := l.Metrics()
	state := WeekState{
		Days:      make(map[string]float64, ledger.DaysPerWeek),
		Metrics:   m,
		UpdatedAt: time.Now().UTC(),
	}
	for _, slot := range l.Bars() {
		state.Days[slot.Day.String()] = slot.KWh
	}

	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding week state: %w", err)
	}
	if err := p.publish(p.Topic(scope, "state"), body); err != nil {
		return err
	}

	values := []struct {
		name string
		val  string
	}{
		{"total_kwh", fmt.Sprintf("%.2f", m.TotalKWh)},
		{"average_kwh", fmt.Sprintf("%.2f", m.AverageKWh)},
		{"cost", fmt.Sprintf("%.2f", m.Cost)},
		{"carbon_kg", fmt.Sprintf("%.2f", m.CarbonKg)},
		{"monthly_carbon_kg", fmt.Sprintf("%.2f", m.MonthlyCarbonKg)},
		{"trees_to_offset", fmt.Sprintf("%d", m.TreesToOffset)},
	}
	for _, v := range values {
		if err := p.publish(p.Topic(scope, v.name), v.val); err != nil {
			return err
		}
	}

	for _, slot := range l.Bars() {
		topic := p.Topic(scope, "day", strings.ToLower(slot.Day.String()))
		if err := p.publish(topic, fmt.Sprintf("%.2f", slot.KWh)); err != nil {
			return err
		}
	}
	return nil
}

// Clear publishes an empty retained state document for scope.
func (p *Publisher) Clear(scope string) error {
	return p.publish(p.Topic(scope, "state"), "")
}

func (p *Publisher) publish(topic string, payload interface{}) error {
	token := p.client.Publish(topic, 1, true, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publishing %s: timed out after %s", topic, p.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the MQTT broker.
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

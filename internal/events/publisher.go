package events

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Shipping engine event types
const (
	PackingCompleted = "shipping.packing_completed"
	QuoteCompleted   = "shipping.quote_completed"
)

const streamName = "SHIPPING_EVENTS"

// EngineEvent is the payload published for packing and quote lifecycle
// events. Consumers key off EventType.
type EngineEvent struct {
	EventType  string    `json:"eventType"`
	CompanyID  string    `json:"companyId"`
	OrderID    string    `json:"orderId,omitempty"`
	GroupCount int       `json:"groupCount,omitempty"`
	RateCount  int       `json:"rateCount,omitempty"`
	BoxCost    float64   `json:"boxCost,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher publishes engine events to NATS JetStream. Publishing is
// best-effort from the caller's perspective; a failed publish is logged and
// never fails the originating request.
type Publisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the shipping events stream.
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	nc, err := nats.Connect(natsURL,
		nats.Name("rate-engine-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	entry := logger.WithField("component", "events.publisher")

	if _, err := js.StreamInfo(streamName); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{"shipping.>"},
			Storage:  nats.FileStorage,
		})
		if err != nil {
			entry.WithError(err).Warn("Failed to ensure SHIPPING_EVENTS stream")
		}
	}

	return &Publisher{nc: nc, js: js, logger: entry}, nil
}

// Close drains the NATS connection.
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.logger.WithError(err).Warn("failed to drain NATS connection")
	}
}

// PublishPackingCompleted publishes a packing completed event.
func (p *Publisher) PublishPackingCompleted(ctx context.Context, companyID, orderID string, groupCount int, boxCost float64) error {
	return p.publish(ctx, EngineEvent{
		EventType:  PackingCompleted,
		CompanyID:  companyID,
		OrderID:    orderID,
		GroupCount: groupCount,
		BoxCost:    boxCost,
		Timestamp:  time.Now().UTC(),
	})
}

// PublishQuoteCompleted publishes a quote completed event.
func (p *Publisher) PublishQuoteCompleted(ctx context.Context, companyID, orderID string, groupCount, rateCount int) error {
	return p.publish(ctx, EngineEvent{
		EventType:  QuoteCompleted,
		CompanyID:  companyID,
		OrderID:    orderID,
		GroupCount: groupCount,
		RateCount:  rateCount,
		Timestamp:  time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, event EngineEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = p.js.Publish(event.EventType, data, nats.Context(ctx))
	if err != nil {
		p.logger.WithError(err).WithField("event_type", event.EventType).Warn("failed to publish event")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"event_type": event.EventType,
		"company_id": event.CompanyID,
	}).Debug("event published")
	return nil
}

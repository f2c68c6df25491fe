package service

import (
	"encoding/json"
	"log"
	"time"

	"tingling/internal/util"
)

const EventsExchange = "tingling.events"

const (
	EventFriendRequestSent      = "friend_request.sent"
	EventFriendRequestResponded = "friend_request.responded"
	EventUserBlocked            = "user.blocked"
	EventMessageSent            = "message.sent"
	EventCallLogged             = "call.logged"
	EventStatusCreated          = "status.created"
)

// Event is the envelope published for integration consumers
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// EventPublisher emits domain events. Publishing never fails the caller.
type EventPublisher interface {
	Publish(eventType string, data interface{})
}

type rabbitEventPublisher struct {
	rabbitMQ *util.RabbitMQClient
}

// NewEventPublisher returns a publisher backed by rabbitMQ, or one that drops
// every event when rabbitMQ is nil
func NewEventPublisher(rabbitMQ *util.RabbitMQClient) EventPublisher {
	if rabbitMQ == nil {
		return noopEventPublisher{}
	}
	if err := rabbitMQ.DeclareTopicExchange(EventsExchange); err != nil {
		log.Printf("Failed to declare %s exchange: %v", EventsExchange, err)
	}
	return &rabbitEventPublisher{rabbitMQ: rabbitMQ}
}

func (p *rabbitEventPublisher) Publish(eventType string, data interface{}) {
	body, err := json.Marshal(Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}

	go func() {
		if err := p.rabbitMQ.Publish(EventsExchange, eventType, body); err != nil {
			log.Printf("Failed to publish %s event to RabbitMQ: %v", eventType, err)
		}
	}()
}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(string, interface{}) {}

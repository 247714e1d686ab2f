package services

import (
	"encoding/json"
	"log"

	"warung/pkg/rabbitmq"
)

// EventPublisher pushes background work onto a queue. Implemented by
// *rabbitmq.Client; mocked in tests.
type EventPublisher interface {
	Publish(queue string, body []byte) error
}

// EmailEvent asks the email worker to deliver one message.
type EmailEvent struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AssetCleanupEvent asks the cleanup worker to delete a stored asset.
type AssetCleanupEvent struct {
	Path string `json:"path"`
}

// publishEmail enqueues an email best-effort: failures are logged, never
// surfaced to the caller.
func publishEmail(publisher EventPublisher, event EmailEvent) {
	if publisher == nil {
		log.Println("Event publisher is not initialized, skipping email event")
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal email event: %v", err)
		return
	}
	if err := publisher.Publish(rabbitmq.EmailQueue, body); err != nil {
		log.Printf("Warning: failed to publish email event for %s: %v", event.To, err)
	}
}

// publishAssetCleanup enqueues an asset deletion best-effort.
func publishAssetCleanup(publisher EventPublisher, path string) {
	if publisher == nil || path == "" {
		return
	}
	body, err := json.Marshal(AssetCleanupEvent{Path: path})
	if err != nil {
		log.Printf("Failed to marshal asset cleanup event: %v", err)
		return
	}
	if err := publisher.Publish(rabbitmq.AssetCleanupQueue, body); err != nil {
		log.Printf("Warning: failed to publish asset cleanup for %s: %v", path, err)
	}
}

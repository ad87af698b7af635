// Package mqtt publishes appended log events to an MQTT broker so line-side
// displays and andon boards can react without polling the dashboard.
package mqtt

import (
	"encoding/json"
	"time"

	"shopfloor/internal/storage"
)

// DefaultPrefix is used when no topic prefix is configured.
const DefaultPrefix = "shopfloor"

// Publisher publishes events to MQTT.
type Publisher interface {
	// PublishEvent sends an appended event to the broker. Adjustment calls
	// are also sent to the station's alert topic.
	PublishEvent(ev storage.Event) error

	// Close disconnects from the broker.
	Close() error
}

// Topics derives the topic names from a prefix.
type Topics struct {
	Prefix string
}

func (t Topics) prefix() string {
	if t.Prefix == "" {
		return DefaultPrefix
	}
	return t.Prefix
}

func (t Topics) Events() string {
	return t.prefix() + "/events"
}

func (t Topics) Alert(station string) string {
	return t.prefix() + "/alerts/" + station
}

// Payload is the JSON message body.
type Payload struct {
	Event EventPayload `json:"event"`
}

type EventPayload struct {
	Timestamp string `json:"timestamp"`
	Station   string `json:"station"`
	Unit      string `json:"unit,omitempty"`
	Stage     string `json:"stage"`
	Progress  int    `json:"progress"`
	Note      string `json:"note,omitempty"`
	UID       string `json:"uid"`
}

func FormatPayload(ev storage.Event) ([]byte, error) {
	payload := Payload{
		Event: EventPayload{
			Timestamp: ev.Timestamp.UTC().Format(time.RFC3339),
			Station:   ev.StationID,
			Unit:      ev.UnitDisplay,
			Stage:     string(ev.Stage),
			Progress:  ev.Stage.Progress(),
			Note:      ev.Note,
			UID:       ev.UID,
		},
	}
	return json.Marshal(payload)
}

// IsAlert reports whether the event also goes to the station alert topic.
func IsAlert(ev storage.Event) bool {
	return ev.Stage == storage.StageCall
}

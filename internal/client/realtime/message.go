package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

// MessageType is the "type" discriminator of a realtime frame.
type MessageType string

const (
	TypePing         MessageType = "ping"
	TypePong         MessageType = "pong"
	TypeAgentStatus  MessageType = "agent_status"
	TypeNotification MessageType = "notification"
	TypeError        MessageType = "error"
)

// Frames are flat JSON objects: {"type": "...", <payload fields>}.
type envelope struct {
	Type MessageType `json:"type"`
}

type errorFrame struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Handlers receive decoded frames. Nil handlers are skipped. They run on the
// channel's read goroutine and must not block for long.
type Handlers struct {
	OnAgentStatus  func(models.AgentStatus)
	OnNotification func(models.Notification)
	OnServerError  func(message string)
	// OnAuthFailed is called once when the backend refuses the token. The
	// channel does not reconnect after that.
	OnAuthFailed func()
}

func decodeType(data []byte) (MessageType, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("decode frame: %w", err)
	}
	return env.Type, nil
}

func decodePayload[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode payload: %w", err)
	}
	return v, nil
}

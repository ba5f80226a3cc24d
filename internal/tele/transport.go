package tele

import (
	"context"

	"github.com/temoto/imulink/log2"
)

// Tele transport contract:
// - Init fails only with invalid config, ignores network errors
// - Send* return true when message is accepted for delivery, false means retry later
// - application may start without network available
// - messages are delivered at least once
type Transporter interface {
	Init(ctx context.Context, log *log2.Log, config Config, onCommand CommandCallback, willPayload []byte) error
	SendState(payload []byte) bool
	SendTelemetry(payload []byte) bool
	SendCommandResponse(topicSuffix string, payload []byte) bool
	Close()
}

type CommandCallback func(context.Context, []byte) bool

func TopicConnect(clientID string) string                 { return clientID + "/c" }
func TopicCommand(clientID string) string                 { return clientID + "/r/c" }
func TopicResponse(clientID string, suffix string) string { return clientID + "/" + suffix }
func TopicState(clientID string) string                   { return clientID + "/w/1s" }
func TopicTelemetry(clientID string) string               { return clientID + "/w/1t" }

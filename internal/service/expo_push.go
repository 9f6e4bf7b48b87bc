package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ExpoPushClient sends push notifications via Expo's Push API.
//
// The mobile app registers an Expo push token (looks like
// "ExponentPushToken[xxx]") with the backend; delivering a notification is a
// POST of up to 100 messages to Expo, which handles iOS and Android fan-out.
type ExpoPushClient struct {
	httpClient *http.Client
	url        string
}

// ExpoPushMessage is one message in the payload for Expo's Push API.
type ExpoPushMessage struct {
	To       string                 `json:"to"`                 // Expo push token
	Title    string                 `json:"title,omitempty"`    // Notification title
	Body     string                 `json:"body"`               // Notification body (required)
	Data     map[string]interface{} `json:"data,omitempty"`     // Custom data payload
	Sound    string                 `json:"sound,omitempty"`    // "default" or custom sound
	Priority string                 `json:"priority,omitempty"` // "default", "normal", "high"
}

// ExpoPushResponse is the response from Expo's API.
type ExpoPushResponse struct {
	Data []ExpoPushTicket `json:"data"`
}

type ExpoPushTicket struct {
	Status  string `json:"status"` // "ok" or "error"
	ID      string `json:"id"`     // Ticket ID for receipt checking
	Message string `json:"message,omitempty"`
	Details struct {
		Error string `json:"error,omitempty"` // "DeviceNotRegistered", "MessageTooBig", etc.
	} `json:"details,omitempty"`
}

const expoPushURL = "https://exp.host/--/api/v2/push/send"

// expoMaxChunkSize is Expo's per-request message cap.
const expoMaxChunkSize = 100

// NewExpoPushClient creates a new Expo Push client. Expo Push needs no
// credentials.
func NewExpoPushClient() *ExpoPushClient {
	return &ExpoPushClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		url: expoPushURL,
	}
}

// IsExpoPushToken reports whether the token matches Expo's token grammar.
// Anything else must never be submitted to the API.
func IsExpoPushToken(token string) bool {
	return (strings.HasPrefix(token, "ExponentPushToken[") ||
		strings.HasPrefix(token, "ExpoPushToken[")) &&
		strings.HasSuffix(token, "]")
}

// Send submits the messages in chunks of at most 100. A failed chunk is
// logged and the remaining chunks are still sent; push delivery is best
// effort and no chunk outcome aborts the rest of the batch.
func (c *ExpoPushClient) Send(ctx context.Context, messages []ExpoPushMessage) {
	for _, chunk := range chunkPushMessages(messages, expoMaxChunkSize) {
		if err := c.sendChunk(ctx, chunk); err != nil {
			log.Printf("[ExpoPush] Chunk of %d failed: %v", len(chunk), err)
		}
	}
}

func (c *ExpoPushClient) sendChunk(ctx context.Context, chunk []ExpoPushMessage) error {
	payload, err := json.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("marshal chunk: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expo api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var pushResp ExpoPushResponse
	if err := json.Unmarshal(respBody, &pushResp); err != nil {
		// Push was accepted; an unparseable body is not a delivery failure
		log.Printf("[ExpoPush] Failed to parse response: %v", err)
		return nil
	}

	for i, ticket := range pushResp.Data {
		if ticket.Status != "ok" {
			log.Printf("[ExpoPush] Message %d rejected: %s (error: %s)",
				i, ticket.Message, ticket.Details.Error)
		}
	}
	return nil
}

// chunkPushMessages splits messages into slices of at most size.
func chunkPushMessages(messages []ExpoPushMessage, size int) [][]ExpoPushMessage {
	if len(messages) == 0 {
		return nil
	}
	chunks := make([][]ExpoPushMessage, 0, (len(messages)+size-1)/size)
	for size < len(messages) {
		chunks = append(chunks, messages[:size])
		messages = messages[size:]
	}
	return append(chunks, messages)
}

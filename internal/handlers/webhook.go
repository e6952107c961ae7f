package handlers

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"relaybot/internal/models"
	"relaybot/internal/services"
)

// Platform interaction wire constants.
const (
	interactionPing               = 1
	interactionApplicationCommand = 2

	responsePong           = 1
	responseChannelMessage = 4
)

// WebhookHandler handles signed platform interactions. Every request
// carries an ed25519 signature over timestamp+body that must verify
// against the platform's public key before the payload is trusted.
type WebhookHandler struct {
	dispatch  *services.DispatchService
	publicKey ed25519.PublicKey
}

// NewWebhookHandler creates a new webhook handler. publicKeyHex is the
// hex-encoded ed25519 public key issued by the platform.
func NewWebhookHandler(dispatch *services.DispatchService, publicKeyHex string) (*WebhookHandler, error) {
	key, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid webhook public key length: %d", len(key))
	}

	return &WebhookHandler{
		dispatch:  dispatch,
		publicKey: ed25519.PublicKey(key),
	}, nil
}

type interaction struct {
	Type   int    `json:"type"`
	Member member `json:"member"`
	Data   struct {
		Name    string `json:"name"`
		Options []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"options"`
	} `json:"data"`
}

type member struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
}

// HandleInteraction handles an incoming signed interaction
// POST /api/webhook
func (h *WebhookHandler) HandleInteraction(c *fiber.Ctx) error {
	signature := c.Get("X-Signature-Ed25519")
	timestamp := c.Get("X-Signature-Timestamp")
	body := c.Body()

	if !h.verify(signature, timestamp, body) {
		log.Printf("❌ Webhook signature verification failed")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid signature",
		})
	}

	var inter interaction
	if err := json.Unmarshal(body, &inter); err != nil {
		log.Printf("❌ Webhook payload parse failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid payload format",
		})
	}

	switch inter.Type {
	case interactionPing:
		return c.JSON(fiber.Map{"type": responsePong})

	case interactionApplicationCommand:
		return h.handleCommand(c, &inter)

	default:
		return messageResponse(c, "Unknown interaction type")
	}
}

func (h *WebhookHandler) handleCommand(c *fiber.Ctx, inter *interaction) error {
	userID := inter.Member.User.ID
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing user",
		})
	}

	var args []string
	for _, opt := range inter.Data.Options {
		if opt.Value != "" {
			args = append(args, opt.Value)
		}
	}

	replies, err := h.dispatch.HandleCommand(c.Context(), models.CommandEvent{
		Name:   inter.Data.Name,
		UserID: userID,
		Args:   args,
	})
	if err != nil {
		log.Printf("❌ Webhook command dispatch failed: %v", err)
		return messageResponse(c, "An error occurred while processing your request.")
	}

	return messageResponse(c, strings.Join(replies, "\n"))
}

// verify checks the ed25519 signature over timestamp+body.
func (h *WebhookHandler) verify(signature, timestamp string, body []byte) bool {
	if signature == "" || timestamp == "" {
		return false
	}

	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	return ed25519.Verify(h.publicKey, msg, sig)
}

func messageResponse(c *fiber.Ctx, content string) error {
	return c.JSON(fiber.Map{
		"type": responseChannelMessage,
		"data": fiber.Map{
			"content": content,
		},
	})
}

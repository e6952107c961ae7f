package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"relaybot/internal/models"
	"relaybot/internal/services"
)

// ChatHandler handles conversational and command API requests
type ChatHandler struct {
	dispatch *services.DispatchService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(dispatch *services.DispatchService) *ChatHandler {
	return &ChatHandler{dispatch: dispatch}
}

type chatRequest struct {
	UserID      string                 `json:"user_id"`
	Text        string                 `json:"text"`
	Attachments []models.AttachmentRef `json:"attachments,omitempty"`
}

type commandRequest struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Args   []string `json:"args,omitempty"`
}

// HandleChat processes one message event
// POST /api/chat
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	replies, err := h.dispatch.HandleMessage(c.Context(), models.MessageEvent{
		UserID:      req.UserID,
		Text:        req.Text,
		Attachments: req.Attachments,
	})
	if err != nil {
		log.Printf("❌ [CHAT] Dispatch failed for user %s: %v", req.UserID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.DispatchResult{Replies: replies})
}

// HandleCommand processes one structured command event
// POST /api/command
func (h *ChatHandler) HandleCommand(c *fiber.Ctx) error {
	var req commandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.UserID == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id and name are required",
		})
	}

	replies, err := h.dispatch.HandleCommand(c.Context(), models.CommandEvent{
		Name:   req.Name,
		UserID: req.UserID,
		Args:   req.Args,
	})
	if err != nil {
		log.Printf("❌ [COMMAND] Dispatch failed for user %s: %v", req.UserID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.DispatchResult{Replies: replies})
}

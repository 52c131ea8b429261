package handlers

import (
	"strconv"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RuKhan7/Flea-market2.0000/internal/ws"
	"github.com/RuKhan7/Flea-market2.0000/models"
)

type MessageHandler struct {
	Hub *ws.Hub
	DB  *gorm.DB
}

func NewMessageHandler(hub *ws.Hub, db *gorm.DB) *MessageHandler {
	return &MessageHandler{Hub: hub, DB: db}
}

// SendMessageRequest defines the payload for sending a direct message
type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id"`
	ProductID   *uint  `json:"product_id"`
	Text        string `json:"text"`
}

// SendMessage - POST /api/messages
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}
	if req.RecipientID == profile.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot message yourself"})
	}

	var recipient models.Profile
	if err := h.DB.First(&recipient, req.RecipientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recipient not found"})
	}

	if req.ProductID != nil {
		var product models.Product
		if err := h.DB.First(&product, *req.ProductID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
	}

	message := models.Message{
		SenderID:    profile.ID,
		RecipientID: recipient.ID,
		ProductID:   req.ProductID,
		Text:        req.Text,
	}

	if err := h.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not send message"})
	}

	// Best-effort realtime push; the row above is the source of truth
	h.Hub.NotifyProfile(recipient.ID, ws.Notification{
		Type:      "new_message",
		MessageID: message.ID,
		SenderID:  profile.ID,
		ProductID: message.ProductID,
		Text:      message.Text,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Message sent", "data": message})
}

// GetInbox - GET /api/messages
func (h *MessageHandler) GetInbox(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	var messages []models.Message
	if err := h.DB.
		Preload("Sender.User").
		Preload("Product").
		Where("recipient_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch messages"})
	}

	return c.JSON(fiber.Map{"data": messages})
}

// GetConversation - GET /api/messages/with/:profileID
func (h *MessageHandler) GetConversation(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	otherID, _ := strconv.Atoi(c.Params("profileID"))

	var messages []models.Message
	if err := h.DB.
		Preload("Sender.User").
		Preload("Product").
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			profile.ID, otherID, otherID, profile.ID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch conversation"})
	}

	return c.JSON(fiber.Map{"data": messages})
}

// MarkRead - PATCH /api/messages/:id/read
// Only the recipient can mark a message read.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}

	id, _ := strconv.Atoi(c.Params("id"))
	var message models.Message
	if err := h.DB.First(&message, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}
	if message.RecipientID != profile.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	if err := h.DB.Model(&message).UpdateColumn("is_read", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update message"})
	}

	return c.JSON(fiber.Map{"message": "Marked as read"})
}

// WebSocketUpgradeMiddleware ensures the client is trying to upgrade to WebSocket
func (h *MessageHandler) WebSocketUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// NotificationSocket returns the websocket handler for message notifications
func (h *MessageHandler) NotificationSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		profileID, ok := conn.Locals("profile_id").(uint)
		if !ok || profileID == 0 {
			conn.Close()
			return
		}

		client := &ws.Client{
			Hub:       h.Hub,
			Conn:      conn,
			Send:      make(chan []byte, 256),
			ProfileID: profileID,
		}

		client.Hub.Register <- client

		go client.WritePump()
		client.ReadPump()
	})
}

// ResolveProfileForSocket runs as fiber middleware before the upgrade and
// stashes the caller's profile id for the socket handler.
func (h *MessageHandler) ResolveProfileForSocket(c *fiber.Ctx) error {
	profile, err := currentProfile(c, h.DB)
	if err != nil {
		return err
	}
	c.Locals("profile_id", profile.ID)
	return c.Next()
}

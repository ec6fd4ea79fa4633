package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// MessageHandler serves the caller's side of a conversation. The partner is
// always a path parameter; the caller always comes from the token.
type MessageHandler struct {
	conversations ports.ConversationService
}

func NewMessageHandler(conversations ports.ConversationService) *MessageHandler {
	return &MessageHandler{conversations: conversations}
}

// List
//
// @Summary      Conversation history with a partner
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        partnerID  path  string  true  "Partner user id"
// @Success      200  {array}   domain.Message
// @Router       /v1/conversations/{partnerID}/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}
	msgs, err := h.conversations.GetMessages(c.Request().Context(), me.ID, c.Param("partnerID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Send
//
// @Summary      Send a message to a partner
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        partnerID  path  string              true  "Receiver user id"
// @Param        body       body  sendMessageRequest  true  "Message"
// @Success      201  {object}  domain.Message
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/conversations/{partnerID}/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.conversations.Send(c.Request().Context(), me.ID, c.Param("partnerID"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// MarkRead acknowledges everything the partner has sent so far.
//
// @Summary      Mark conversation read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        partnerID  path  string  true  "Partner user id"
// @Success      200  {object}  unreadResponse
// @Router       /v1/conversations/{partnerID}/read [post]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}
	partner := c.Param("partnerID")
	if err := h.conversations.MarkRead(c.Request().Context(), me.ID, partner); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadResponse{ConversationID: domain.ConversationID(me.ID, partner), Unread: 0})
}

// Unread
//
// @Summary      Unread count in a conversation
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        partnerID  path  string  true  "Partner user id"
// @Success      200  {object}  unreadResponse
// @Router       /v1/conversations/{partnerID}/unread [get]
func (h *MessageHandler) Unread(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}
	partner := c.Param("partnerID")
	n, err := h.conversations.UnreadCount(c.Request().Context(), me.ID, partner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadResponse{ConversationID: domain.ConversationID(me.ID, partner), Unread: n})
}

package http

import (
	"github.com/gin-gonic/gin"

	"tailortalk/pkg/response"
)

// Chat godoc
// @Summary      Send a chat message
// @Description  Passes one user message to the scheduling assistant. Omit session_id to start a new conversation; reply with a slot number to pick an offered slot.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      chatReq  true  "Message"
// @Success      200   {object}  response.Resp{data=chatResp}
// @Failure      400   {object}  response.Resp
// @Failure      500   {object}  response.Resp
// @Router       /api/v1/chat [post]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		h.l.Warnf(ctx, "chat.delivery.http.Chat: invalid request: %v", err)
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.Chat(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "chat.delivery.http.Chat: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newChatResp(output))
}

// GetSession godoc
// @Summary      Get a conversation
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Resp{data=sessionResp}
// @Failure      404  {object}  response.Resp
// @Router       /api/v1/sessions/{id} [get]
func (h *handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processSessionID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	st, err := h.uc.GetSession(ctx, id)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSessionResp(st))
}

// ResetSession godoc
// @Summary      Reset a conversation
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Resp
// @Failure      404  {object}  response.Resp
// @Router       /api/v1/sessions/{id} [delete]
func (h *handler) ResetSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processSessionID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.ResetSession(ctx, id); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, map[string]string{"session_id": id, "status": "reset"})
}

package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubmsg/backend/internal/domain/entity"
	"github.com/clubmsg/backend/internal/domain/service"
)

type postMessageRequest struct {
	Body     *string `json:"body"`
	BodyType string  `json:"body_type"`
	MsgType  string  `json:"msg_type"`
}

func (h *Handler) PostProfileMessage(c *gin.Context) {
	var r postMessageRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	message, err := h.messages.SendToProfile(c.Request.Context(), requesterID(c), c.Param("profile_id"), r.Body, r.BodyType, r.MsgType)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *Handler) PostClubMessage(c *gin.Context) {
	var r postMessageRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	message, err := h.messages.SendToClub(c.Request.Context(), requesterID(c), c.Param("club_id"), r.Body, r.BodyType, r.MsgType)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *Handler) ListProfileMessages(c *gin.Context) {
	messages, err := h.messages.GetByTarget(c.Request.Context(), entity.TargetProfile, c.Param("profile_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) ListClubMessages(c *gin.Context) {
	messages, err := h.messages.GetByTarget(c.Request.Context(), entity.TargetClub, c.Param("club_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) GetMessage(c *gin.Context) {
	message, err := h.messages.Get(c.Request.Context(), requesterID(c), c.Param("message_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

func (h *Handler) UpdateMessage(c *gin.Context) {
	var patch service.MessagePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	message, err := h.messages.Update(c.Request.Context(), requesterID(c), c.Param("message_id"), patch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	if err := h.messages.Delete(c.Request.Context(), requesterID(c), c.Param("message_id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

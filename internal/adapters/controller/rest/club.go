package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubmsg/backend/internal/domain/service"
)

func (h *Handler) ListClubs(c *gin.Context) {
	clubs, err := h.clubs.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, clubs)
}

func (h *Handler) CreateClub(c *gin.Context) {
	type req struct {
		Title            string   `json:"title" binding:"required"`
		About            string   `json:"about"`
		AllowedBodyTypes []string `json:"allowed_body_types"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	club, err := h.clubs.Create(c.Request.Context(), requesterID(c), r.Title, r.About, r.AllowedBodyTypes)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, club)
}

func (h *Handler) GetClub(c *gin.Context) {
	club, err := h.clubs.Get(c.Request.Context(), c.Param("club_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, club)
}

func (h *Handler) UpdateClub(c *gin.Context) {
	var patch service.ClubPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	club, err := h.clubs.Update(c.Request.Context(), requesterID(c), c.Param("club_id"), patch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, club)
}

func (h *Handler) DeleteClub(c *gin.Context) {
	if err := h.clubs.Delete(c.Request.Context(), requesterID(c), c.Param("club_id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.memberships.GetMembers(c.Request.Context(), c.Param("club_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handler) AddMember(c *gin.Context) {
	membership, err := h.memberships.Add(c.Request.Context(), requesterID(c), c.Param("club_id"), c.Param("profile_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, membership)
}

func (h *Handler) UpdateMember(c *gin.Context) {
	var patch service.MembershipPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	membership, err := h.memberships.Update(c.Request.Context(), requesterID(c), c.Param("club_id"), c.Param("profile_id"), patch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, membership)
}

func (h *Handler) RemoveMember(c *gin.Context) {
	if err := h.memberships.Remove(c.Request.Context(), requesterID(c), c.Param("club_id"), c.Param("profile_id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetInviteQR(c *gin.Context) {
	data, err := h.qr.GetClubInviteQR(c.Request.Context(), requesterID(c), c.Param("club_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (h *Handler) RevokeInviteQR(c *gin.Context) {
	if err := h.qr.RevokeClubInviteQR(c.Request.Context(), requesterID(c), c.Param("club_id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

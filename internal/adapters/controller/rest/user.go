package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubmsg/backend/internal/domain/entity"
	"github.com/clubmsg/backend/internal/domain/service"
)

func (h *Handler) Register(c *gin.Context) {
	type req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Register(c.Request.Context(), r.Username, r.Email, r.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	token, err := h.issueToken(user)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "access": token})
}

func (h *Handler) Login(c *gin.Context) {
	type req struct {
		UsernameOrEmail string `json:"username_or_email" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Login(c.Request.Context(), r.UsernameOrEmail, r.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	token, err := h.issueToken(user)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "access": token})
}

func (h *Handler) ConfirmEmail(c *gin.Context) {
	profile, err := h.users.ConfirmEmail(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser answers with the user's profile enriched with the messages
// attached to it.
func (h *Handler) GetUser(c *gin.Context) {
	profile, err := h.profiles.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var patch service.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Update(c.Request.Context(), requesterID(c), c.Param("user_id"), patch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), requesterID(c), c.Param("user_id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var patch service.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.profiles.Update(c.Request.Context(), requesterID(c), c.Param("user_id"), patch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) SetOnline(c *gin.Context) {
	if err := h.profiles.SetOnline(c.Request.Context(), requesterID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) SetOffline(c *gin.Context) {
	if err := h.profiles.SetOffline(c.Request.Context(), requesterID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) issueToken(user *entity.User) (string, error) {
	return h.tokens.Generate(user.ID, map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
		"is_staff": user.IsStaff,
	})
}

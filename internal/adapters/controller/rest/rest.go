// Package rest is the HTTP boundary: it binds requests, resolves the
// authenticated identity and calls exactly one domain operation per
// route. No business rules live here.
package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/service"
	"github.com/clubmsg/backend/pkg/jwt"
	"github.com/clubmsg/backend/pkg/logger"
)

type Handler struct {
	users       *service.UserService
	profiles    *service.ProfileService
	clubs       *service.ClubService
	memberships *service.MembershipService
	messages    *service.MessageService
	qr          *service.QrService
	tokens      *jwt.Service
	log         *logger.Logger
}

func NewHandler(
	users *service.UserService,
	profiles *service.ProfileService,
	clubs *service.ClubService,
	memberships *service.MembershipService,
	messages *service.MessageService,
	qrService *service.QrService,
	tokens *jwt.Service,
	log *logger.Logger,
) *Handler {
	return &Handler{
		users:       users,
		profiles:    profiles,
		clubs:       clubs,
		memberships: memberships,
		messages:    messages,
		qr:          qrService,
		tokens:      tokens,
		log:         log,
	}
}

// Router builds the route table. Everything except register, login and
// email confirmation sits behind the auth middleware.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/v1")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/confirm/:code", h.ConfirmEmail)

	auth := api.Group("", h.Auth())
	{
		auth.GET("/users", h.ListUsers)
		auth.GET("/users/:user_id", h.GetUser)
		auth.PATCH("/users/:user_id", h.UpdateUser)
		auth.DELETE("/users/:user_id", h.DeleteUser)
		auth.PATCH("/users/:user_id/profile", h.UpdateProfile)

		auth.POST("/presence/online", h.SetOnline)
		auth.POST("/presence/offline", h.SetOffline)

		auth.GET("/clubs", h.ListClubs)
		auth.POST("/clubs", h.CreateClub)
		auth.GET("/clubs/:club_id", h.GetClub)
		auth.PATCH("/clubs/:club_id", h.UpdateClub)
		auth.DELETE("/clubs/:club_id", h.DeleteClub)

		auth.GET("/clubs/:club_id/members", h.ListMembers)
		auth.POST("/clubs/:club_id/members/:profile_id", h.AddMember)
		auth.PATCH("/clubs/:club_id/members/:profile_id", h.UpdateMember)
		auth.DELETE("/clubs/:club_id/members/:profile_id", h.RemoveMember)

		auth.GET("/clubs/:club_id/invite-qr", h.GetInviteQR)
		auth.DELETE("/clubs/:club_id/invite-qr", h.RevokeInviteQR)

		auth.GET("/messages/profiles/:profile_id", h.ListProfileMessages)
		auth.POST("/messages/profiles/:profile_id", h.PostProfileMessage)
		auth.GET("/messages/clubs/:club_id", h.ListClubMessages)
		auth.POST("/messages/clubs/:club_id", h.PostClubMessage)
		auth.GET("/messages/:message_id", h.GetMessage)
		auth.PATCH("/messages/:message_id", h.UpdateMessage)
		auth.DELETE("/messages/:message_id", h.DeleteMessage)
	}

	return r
}

// abortWithError translates a domain error into the boundary's status
// mapping: NotFound 404, Conflict 409, Forbidden 403, validation 400.
func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errorz.Status(err), gin.H{"error": err.Error()})
}

package handlers_fiber

import "github.com/gofiber/fiber/v2"

// RegisterHandlers mounts the API routes on router.
func RegisterHandlers(router fiber.Router, h *Handler) {
	router.Post("/users", h.PostUser)
	router.Post("/teams", h.PostTeam)
	router.Post("/teams/:team_id/invitations", h.PostTeamInvitation)
	router.Get("/teams/:team_id", h.GetTeam)
	router.Get("/invitations/validate", h.GetInvitationValidate)
	router.Post("/invitations/accept", h.PostInvitationAccept)
}

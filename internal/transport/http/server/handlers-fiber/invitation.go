package handlers_fiber

import (
	"net/http"

	"senior-hub-api/internal/dto"
	"senior-hub-api/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// PostTeamInvitation issues an invitation to join the team.
func (h *Handler) PostTeamInvitation(c *fiber.Ctx) error {
	var body dto.CreateInvitationRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Infow("failed to parse body", "error", err.Error())
		return c.Status(http.StatusBadRequest).JSON(errorResponse(dto.INVALIDARGUMENT, "invalid body"))
	}

	rep, err := h.uc.Invite(c.UserContext(), mapper.FromCreateInvitation(c.Params("team_id"), body))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(struct {
		Invitation dto.Invitation `json:"invitation"`
	}{Invitation: mapper.ToInvitation(*rep)})
}

// GetInvitationValidate shows a pending invitation without redeeming it.
func (h *Handler) GetInvitationValidate(c *fiber.Ctx) error {
	view, err := h.uc.Validate(c.UserContext(), c.Query("token"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToInvitationView(*view))
}

// PostInvitationAccept redeems the invitation and joins the invitee to the team.
func (h *Handler) PostInvitationAccept(c *fiber.Ctx) error {
	var body dto.AcceptInvitationRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Infow("failed to parse body", "error", err.Error())
		return c.Status(http.StatusBadRequest).JSON(errorResponse(dto.INVALIDARGUMENT, "invalid body"))
	}

	rep, err := h.uc.Accept(c.UserContext(), body.Token)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAcceptResult(*rep))
}

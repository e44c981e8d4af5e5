package handlers_fiber

import (
	"net/http"

	"senior-hub-api/internal/dto"
	"senior-hub-api/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// PostTeam creates a team with its initial members.
func (h *Handler) PostTeam(c *fiber.Ctx) error {
	var body dto.CreateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Infow("failed to parse body", "error", err.Error())
		return c.Status(http.StatusBadRequest).JSON(errorResponse(dto.INVALIDARGUMENT, "invalid body"))
	}

	team, err := h.uc.CreateTeam(c.UserContext(), mapper.FromCreateTeam(body))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(struct {
		Team dto.Team `json:"team"`
	}{Team: mapper.ToTeam(*team)})
}

// GetTeam returns team with members by id.
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	team, err := h.uc.Team(c.UserContext(), c.Params("team_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToTeam(*team))
}

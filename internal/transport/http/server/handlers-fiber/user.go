package handlers_fiber

import (
	"net/http"

	"senior-hub-api/internal/dto"
	"senior-hub-api/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// PostUser provisions an account.
func (h *Handler) PostUser(c *fiber.Ctx) error {
	var body dto.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Infow("failed to parse body", "error", err.Error())
		return c.Status(http.StatusBadRequest).JSON(errorResponse(dto.INVALIDARGUMENT, "invalid body"))
	}

	usr, err := h.uc.CreateUser(c.UserContext(), mapper.FromCreateUser(body))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(struct {
		User dto.User `json:"user"`
	}{User: mapper.ToUser(*usr)})
}

package handlers_fiber

import (
	"errors"
	"net/http"

	"senior-hub-api/internal/dto"
	"senior-hub-api/internal/entities"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := dto.INTERNAL
	msg := "internal error"

	var nf *entities.NotFoundError
	switch {
	case errors.As(err, &nf):
		status = http.StatusNotFound
		code = dto.NotFoundCode(nf.Resource)
		msg = nf.Error()
	case errors.Is(err, entities.ErrNotFound):
		status = http.StatusNotFound
		code = dto.NotFoundCode("")
		msg = "resource not found"
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = dto.INVALIDARGUMENT
		msg = err.Error()
	case errors.Is(err, entities.ErrInvalidRole):
		status = http.StatusBadRequest
		code = dto.INVALIDROLE
		msg = "role does not exist"
	case errors.Is(err, entities.ErrAlreadyExists):
		status = http.StatusConflict
		code = dto.ALREADYEXISTS
		msg = err.Error()
	case errors.Is(err, entities.ErrAlreadyUsed):
		status = http.StatusConflict
		code = dto.ALREADYUSED
		msg = "invitation was already used"
	case errors.Is(err, entities.ErrExpired):
		status = http.StatusGone
		code = dto.EXPIRED
		msg = "invitation has expired"
	case errors.Is(err, entities.ErrRateLimited):
		status = http.StatusTooManyRequests
		code = dto.RATELIMITED
		msg = "too many invitations, try again later"
	case errors.Is(err, entities.ErrDeliveryFailed):
		status = http.StatusBadGateway
		code = dto.DELIVERYFAILED
		msg = "invitation was created but could not be delivered"
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code dto.ErrorCode, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: msg}}
}

package controller

import (
	"errors"

	"coreclad-be/internal/pkg/serverutils"
	"coreclad-be/internal/service"
	"coreclad-be/pkg/admin/credential"
	"coreclad-be/pkg/catalog"
	"coreclad-be/pkg/session"

	"github.com/gofiber/fiber/v2"
)

// errorStatus maps domain errors onto HTTP statuses. Unknown errors report 0.
func errorStatus(err error) (int, string) {
	switch {
	// storage first: a failed login that could not clear the record leaves the client signed in
	case errors.Is(err, session.ErrStorageUnavailable), errors.Is(err, credential.ErrUnavailable):
		return fiber.StatusServiceUnavailable, "Service temporarily unavailable, try again"
	case errors.Is(err, credential.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, credential.ErrAccountDeactivated):
		return fiber.StatusForbidden, "Account is deactivated"
	case errors.Is(err, session.ErrSuperseded):
		return fiber.StatusConflict, "Request was superseded by a newer login or logout"
	case errors.Is(err, catalog.ErrNotConfirmed):
		return fiber.StatusPreconditionFailed, "Deletion was not confirmed"
	case errors.Is(err, catalog.ErrEmptySelection):
		return fiber.StatusBadRequest, "No products selected"
	case errors.Is(err, catalog.ErrNotInView):
		return fiber.StatusNotFound, "Product is not in the current list"
	case errors.Is(err, service.ErrProductNotFound):
		return fiber.StatusNotFound, "Product not found"
	}
	return 0, ""
}

// fail writes the envelope for known errors and hands the rest to the app's error handler.
func fail(ctx *fiber.Ctx, err error) error {
	var verr *serverutils.ValidationError
	if errors.As(err, &verr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ValidationErrorResponse(verr.Fields))
	}
	if code, msg := errorStatus(err); code != 0 {
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, msg))
	}
	return err
}

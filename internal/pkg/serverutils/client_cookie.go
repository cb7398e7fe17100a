package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	ClientCookieName = "coreclad_client"
	clientIDLocal    = "client_id"
)

// ClientCookie makes sure every request carries an opaque client id, issuing
// a new one when the cookie is missing or not a uuid.
func ClientCookie(secure bool, maxAge time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Cookies(ClientCookieName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		// Refresh on every request so the cookie outlives an idle browser tab
		ctx.Cookie(&fiber.Cookie{
			Name:     ClientCookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(maxAge.Seconds()),
			HTTPOnly: true,
			Secure:   secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		ctx.Locals(clientIDLocal, id)
		return ctx.Next()
	}
}

// ClientID returns the id set by ClientCookie.
func ClientID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(clientIDLocal).(string)
	return id
}

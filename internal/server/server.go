// Package server exposes the credential provisioner over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"tasnim.dev/orgctl/internal/provision"
)

// CredentialVendor is implemented by provision.Provisioner.
type CredentialVendor interface {
	Provision(ctx context.Context, roleName string) (*provision.CredentialSet, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

type credsRequest struct {
	RoleName string `json:"role_name"`
}

// New builds the fiber app. Routes: GET|POST /get-aws-creds and GET /health.
func New(vendor CredentialVendor, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "orgctl credential API",
		ReadTimeout:           60 * time.Second,
		DisableStartupMessage: true,
	})

	app.Use(fiberrecover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handler := getCredsHandler(vendor, log)
	app.Get("/get-aws-creds", handler)
	app.Post("/get-aws-creds", handler)

	return app
}

func getCredsHandler(vendor CredentialVendor, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credsRequest
		// JSON body wins over the query parameter; a malformed body just
		// falls through to the query.
		if err := c.BodyParser(&req); err != nil || req.RoleName == "" {
			req.RoleName = c.Query("role_name")
		}

		if req.RoleName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "role_name is required"})
		}

		creds, err := vendor.Provision(c.UserContext(), req.RoleName)
		if err != nil {
			var perr *provision.PermissionError
			if errors.As(err, &perr) {
				return c.Status(fiber.StatusForbidden).JSON(errorResponse{Error: perr.Error()})
			}
			// Detail is logged but deliberately not returned.
			log.Error().Err(err).Str("role_name", req.RoleName).Msg("provisioning failed")
			return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "internal server error"})
		}

		return c.JSON(creds)
	}
}

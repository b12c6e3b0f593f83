package handler

import (
	"github.com/gofiber/fiber/v2"

	"companyreg/internal/model"
	"companyreg/internal/service"
)

type userRequest struct {
	UserType    model.UserType `json:"user_type"`
	Name        string         `json:"name"`
	Email       *string        `json:"email"`
	Permissions *string        `json:"permissions"`
}

// CreateUser registers a new user.
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req userRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		u, err := svc.Create(c.UserContext(), &model.User{
			UserType:    req.UserType,
			Name:        req.Name,
			Email:       req.Email,
			Permissions: req.Permissions,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// ListUsers returns users newest first.
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(users)
	}
}

// GetUser returns a single user by id.
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid user id")
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// ListProfiles returns the fixed set of company profiles.
func ListProfiles(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profiles, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(profiles)
	}
}

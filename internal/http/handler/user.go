package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"userapi/internal/model"
	"userapi/internal/service"
)

const userBasePath = "/api/user"

func parseID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseUser decodes and validates the request body. On failure it has already
// written the 400 response and returns the write error (usually nil) with ok=false.
func parseUser(c *fiber.Ctx) (*model.User, bool, error) {
	var user model.User
	if err := c.BodyParser(&user); err != nil {
		return nil, false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	if err := validate.StructCtx(c.UserContext(), &user); err != nil {
		return nil, false, writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", validationMessage(err))
	}
	return &user, true, nil
}

// ListUsers returns every user.
//
// @Summary  List users
// @Tags     users
// @Produce  json
// @Success  200 {array}  model.User
// @Failure  500 {object} errorPayload
// @Router   /api/user [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.ListAll(c.UserContext())
		if err != nil {
			return internalError(c, "list_users", err)
		}
		return c.JSON(users)
	}
}

// GetUser returns one user by id.
//
// @Summary  Get a user
// @Tags     users
// @Produce  json
// @Param    id  path     int true "User ID"
// @Success  200 {object} model.User
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /api/user/{id} [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		user, found, err := svc.GetByID(c.UserContext(), id)
		if err != nil {
			return internalError(c, "get_user", err)
		}
		if !found {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
		}
		return c.JSON(user)
	}
}

// CreateUser validates the body and stores it under the next sequential id.
// Any id sent by the client is ignored.
//
// @Summary  Create a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    user body     model.User true "User"
// @Success  201  {object} model.User
// @Header   201  {string} Location "/api/user/{id}"
// @Failure  400  {object} errorPayload
// @Failure  500  {object} errorPayload
// @Router   /api/user [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok, err := parseUser(c)
		if !ok {
			return err
		}
		created, err := svc.Create(c.UserContext(), user)
		if err != nil {
			return internalError(c, "create_user", err)
		}
		c.Location(userBasePath + "/" + strconv.Itoa(created.ID))
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdateUser replaces the stored user. A body id, when present, must match the path id.
//
// @Summary  Replace a user
// @Tags     users
// @Accept   json
// @Param    id   path int        true "User ID"
// @Param    user body model.User true "User"
// @Success  204
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /api/user/{id} [put]
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		user, ok, err := parseUser(c)
		if !ok {
			return err
		}
		if user.ID != 0 && user.ID != id {
			return writeError(c, fiber.StatusBadRequest, "ID_MISMATCH", "body id does not match path id")
		}

		_, found, err := svc.GetByID(c.UserContext(), id)
		if err != nil {
			return internalError(c, "update_user", err)
		}
		if !found {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
		}

		if err := svc.UpdateByID(c.UserContext(), id, user); err != nil {
			return internalError(c, "update_user", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteUser removes a user.
//
// @Summary  Delete a user
// @Tags     users
// @Param    id path int true "User ID"
// @Success  204
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /api/user/{id} [delete]
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		user, found, err := svc.GetByID(c.UserContext(), id)
		if err != nil {
			return internalError(c, "delete_user", err)
		}
		if !found {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
		}
		if err := svc.RemoveByEntity(c.UserContext(), user); err != nil {
			return internalError(c, "delete_user", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

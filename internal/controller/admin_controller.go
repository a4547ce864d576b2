package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"notes-api-be/internal/dto"
	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/apperror"
	"notes-api-be/internal/pkg/serverutils"
	"notes-api-be/internal/service"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, auth *serverutils.AuthMiddleware)
	ListAllNotes(ctx *fiber.Ctx) error
	ListUserNotes(ctx *fiber.Ctx) error
	RestoreNote(ctx *fiber.Ctx) error
	CreateUser(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router, auth *serverutils.AuthMiddleware) {
	h := r.Group("/admin")
	h.Use(auth.Authenticate)
	h.Use(auth.RequireRole(entity.UserRoleAdmin))
	h.Get("/notes", c.ListAllNotes)
	h.Get("/users/:id/notes", c.ListUserNotes)
	h.Post("/notes/:id/restore", c.RestoreNote)
	h.Post("/users", c.CreateUser)
	h.Get("/users", c.ListUsers)
}

func (c *adminController) ListAllNotes(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListAllNotes(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list all notes", res))
}

func (c *adminController) ListUserNotes(ctx *fiber.Ctx) error {
	userID, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		return apperror.NotFound("user not found")
	}

	res, err := c.adminService.ListNotesForUser(ctx.Context(), uint(userID))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list user notes", res))
}

func (c *adminController) RestoreNote(ctx *fiber.Ctx) error {
	id, err := noteIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.adminService.RestoreNote(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success restore note", res))
}

func (c *adminController) CreateUser(ctx *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequest("invalid request payload")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.CreateUser(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create user", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListUsers(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

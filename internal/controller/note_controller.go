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

type INoteController interface {
	RegisterRoutes(r fiber.Router, auth *serverutils.AuthMiddleware)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router, auth *serverutils.AuthMiddleware) {
	h := r.Group("/note/v1")
	h.Use(auth.Authenticate)
	h.Use(auth.RequireRole(entity.UserRoleUser))
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

// noteIDParam parses the :id path segment. A malformed id is
// indistinguishable from a missing note.
func noteIDParam(ctx *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		return 0, apperror.NotFound("note not found")
	}
	return uint(id), nil
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	actor := serverutils.CurrentUser(ctx)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequest("invalid request payload")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), actor, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	actor := serverutils.CurrentUser(ctx)

	res, err := c.noteService.ListOwn(ctx.Context(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	actor := serverutils.CurrentUser(ctx)

	id, err := noteIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.Context(), actor, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	actor := serverutils.CurrentUser(ctx)

	id, err := noteIDParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequest("invalid request payload")
	}

	res, err := c.noteService.Update(ctx.Context(), actor, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	actor := serverutils.CurrentUser(ctx)

	id, err := noteIDParam(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.Context(), actor, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}

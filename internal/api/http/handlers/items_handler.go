package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/items-api/internal/api/dto"
	"github.com/spec-kit/items-api/internal/auth"
	"github.com/spec-kit/items-api/internal/service"
	apperrors "github.com/spec-kit/items-api/pkg/util/errorutil"
)

// ItemsHandler manages the caller's items.
type ItemsHandler struct {
	service *service.ItemService
}

// NewItemsHandler constructs handler.
func NewItemsHandler(itemService *service.ItemService) *ItemsHandler {
	return &ItemsHandler{service: itemService}
}

// ListItems GET /items.
func (h *ItemsHandler) ListItems(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.ErrMissingToken)
	}
	items, err := h.service.List(c.UserContext(), principal.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateItem POST /items.
func (h *ItemsHandler) CreateItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.ErrMissingToken)
	}
	req, err := parseItemRequest(c)
	if err != nil {
		return err
	}
	item, err := h.service.Create(c.UserContext(), principal.SubjectID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": item})
}

// UpdateItem PUT /items/:id.
func (h *ItemsHandler) UpdateItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.ErrMissingToken)
	}
	req, err := parseItemRequest(c)
	if err != nil {
		return err
	}
	item, err := h.service.Update(c.UserContext(), principal.SubjectID, c.Params("id"), req.Title, req.Description)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(fiber.Map{"data": item})
}

// DeleteItem DELETE /items/:id.
func (h *ItemsHandler) DeleteItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.ErrMissingToken)
	}
	if err := h.service.Delete(c.UserContext(), principal.SubjectID, c.Params("id")); err != nil {
		return mapServiceError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseItemRequest(c *fiber.Ctx) (*dto.ItemRequest, error) {
	var req dto.ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

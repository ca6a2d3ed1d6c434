package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/place-service/internal/pkg/errors"
	"github.com/place-service/internal/pkg/utils"
	"github.com/place-service/internal/pkg/validator"
	"github.com/place-service/internal/usecase"
	"github.com/place-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// PlaceHandler maps the place HTTP surface onto the place use case.
type PlaceHandler struct {
	placeUC *usecase.PlaceUseCase
	logger  *zap.Logger
}

func NewPlaceHandler(placeUC *usecase.PlaceUseCase, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		placeUC: placeUC,
		logger:  logger,
	}
}

// Create handles POST /places
func (h *PlaceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	place, err := h.placeUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, place)
}

// GetAll handles GET /places
func (h *PlaceHandler) GetAll(c *fiber.Ctx) error {
	result, err := h.placeUC.GetAll(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// GetByID handles GET /places/:id
func (h *PlaceHandler) GetByID(c *fiber.Ctx) error {
	place, err := h.placeUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, place, nil)
}

// Update handles PUT /places/:id
func (h *PlaceHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	place, err := h.placeUC.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, place, nil)
}

// Delete handles DELETE /places/:id
func (h *PlaceHandler) Delete(c *fiber.Ctx) error {
	if err := h.placeUC.Delete(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"message": "Place deleted"}, nil)
}

// Nearby handles GET /places/nearby?longitude&latitude&category&radius.
// category accepts a comma-separated list.
func (h *PlaceHandler) Nearby(c *fiber.Ctx) error {
	lon, lat, err := parseCoordinates(c)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	radius, err := strconv.ParseFloat(c.Query("radius"), 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRadius)
	}

	req := dto.NearbyRequest{
		Longitude: lon,
		Latitude:  lat,
		Category:  c.Query("category"),
		RadiusKm:  radius,
	}

	result, err := h.placeUC.Nearby(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Region handles GET /places/ismailia?category
func (h *PlaceHandler) Region(c *fiber.Ctx) error {
	result, err := h.placeUC.Region(c.Context(), c.Query("category"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Distance handles GET /places/distance/:id?longitude&latitude
func (h *PlaceHandler) Distance(c *fiber.Ctx) error {
	lon, lat, err := parseCoordinates(c)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	result, err := h.placeUC.Distance(c.Context(), c.Params("id"), dto.DistanceRequest{
		Longitude: lon,
		Latitude:  lat,
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Geocode handles GET /places/geocode?address
func (h *PlaceHandler) Geocode(c *fiber.Ctx) error {
	result, err := h.placeUC.Geocode(c.Context(), c.Query("address"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func parseCoordinates(c *fiber.Ctx) (lon, lat float64, err error) {
	lon, err = strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		return 0, 0, err
	}
	lat, err = strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		return 0, 0, err
	}
	return lon, lat, nil
}

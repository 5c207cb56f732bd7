package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ogrishko/polygon-weather/internal/geo"
	"github.com/ogrishko/polygon-weather/internal/region"
	"github.com/ogrishko/polygon-weather/internal/series"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *region.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/regions", func(c *fiber.Ctx) error {
		var req createRegionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reg, err := service.Create(req.Name, req.toPoints())
		if err != nil {
			if errors.Is(err, region.ErrVertexCount) || errors.Is(err, geo.ErrEmptyPolygon) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create region")
		}

		return c.Status(fiber.StatusCreated).JSON(reg)
	})

	v1.Get("/regions", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"regions": service.List()})
	})

	v1.Get("/regions/:id", func(c *fiber.Ctx) error {
		id, err := parseRegionID(c)
		if err != nil {
			return err
		}

		reg, err := service.Get(id)
		if err != nil {
			if errors.Is(err, region.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "region not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch region")
		}
		return c.JSON(reg)
	})

	v1.Delete("/regions/:id", func(c *fiber.Ctx) error {
		id, err := parseRegionID(c)
		if err != nil {
			return err
		}

		if err := service.Delete(id); err != nil {
			if errors.Is(err, region.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "region not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete region")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/regions/:id/temperature", func(c *fiber.Ctx) error {
		id, err := parseRegionID(c)
		if err != nil {
			return err
		}

		var req temperatureQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		samples, err := service.Temperature(c.Context(), id, req.Range, req.Unit)
		if err != nil {
			if errors.Is(err, region.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "region not found")
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch temperature data")
		}

		resp := fiber.Map{
			"regionId": id,
			"unit":     req.Unit,
			"count":    len(samples),
			"samples":  samples,
		}
		// The annotation flow color-codes a polygon by its overall mean.
		if mean, ok := series.Mean(samples); ok {
			resp["meanTemperature"] = mean
		}
		return c.JSON(resp)
	})
}

// createRegionRequest is the body of POST /regions. Vertex count bounds
// mirror the drawing UI's limits.
type createRegionRequest struct {
	Name     string         `json:"name" validate:"omitempty,max=120"`
	Vertices []pointPayload `json:"vertices" validate:"required,min=3,max=12,dive"`
}

type pointPayload struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

func (r createRegionRequest) toPoints() []geo.Point {
	pts := make([]geo.Point, 0, len(r.Vertices))
	for _, v := range r.Vertices {
		pts = append(pts, geo.Point{Lat: v.Lat, Lng: v.Lng})
	}
	return pts
}

// temperatureQuery holds query parameters for the temperature endpoint.
type temperatureQuery struct {
	Range *series.TimeRange
	Unit  series.Unit
}

func (q *temperatureQuery) bind(c *fiber.Ctx) error {
	unit, err := series.ParseUnit(c.Query("unit"))
	if err != nil {
		return err
	}
	q.Unit = unit

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" && toStr == "" {
		return nil
	}
	if fromStr == "" || toStr == "" {
		return errors.New("from and to must be provided together")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	q.Range = &series.TimeRange{Start: from, End: to}
	return nil
}

func parseRegionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid region id")
	}
	return id, nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}

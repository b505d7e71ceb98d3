package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/forecast-compare/internal/forecast"
	"github.com/i474232898/forecast-compare/internal/store"
)

const (
	viewChart = "chart"
	viewTable = "table"

	defaultDays = 3
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *forecast.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		var req compareQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		comparison, err := service.Compare(c.UserContext(), req.Locations)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch forecasts")
		}

		return c.JSON(render(service, comparison, req.viewQuery))
	})

	v1.Get("/forecast/:id", func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid comparison id")
		}

		var view viewQuery
		if err := view.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		comparison, err := service.Get(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "comparison not found or expired")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load comparison")
		}

		return c.JSON(render(service, comparison, view))
	})
}

// forecastResponse carries one entry in Results per requested location,
// null where the location could not be fetched.
type forecastResponse struct {
	ID      uuid.UUID                  `json:"id"`
	Days    int                        `json:"days"`
	View    string                     `json:"view"`
	Results []*forecast.LocationSeries `json:"results"`
	Series  []forecast.Series          `json:"series,omitempty"`
	Table   *forecast.Table            `json:"table,omitempty"`
}

func render(service *forecast.Service, c forecast.Comparison, v viewQuery) forecastResponse {
	series := service.View(c, v.Days)
	resp := forecastResponse{
		ID:      c.ID,
		Days:    v.Days,
		View:    v.View,
		Results: series,
	}
	if v.View == viewTable {
		table := forecast.BuildTable(series, v.Days)
		resp.Table = &table
	} else {
		resp.Series = forecast.ChartSeries(series)
	}
	return resp
}

// viewQuery selects the window size and output mode.
type viewQuery struct {
	Days int    `validate:"gte=1,lte=8"`
	View string `validate:"oneof=chart table"`
}

func (v *viewQuery) bind(c *fiber.Ctx) error {
	v.Days = defaultDays
	if s := c.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("days must be an integer")
		}
		v.Days = n
	}

	v.View = strings.ToLower(c.Query("view", viewChart))

	return validate.Struct(v)
}

// compareQuery holds query parameters for the compare endpoint.
type compareQuery struct {
	viewQuery
	Raw       []string            `validate:"min=1,max=10,dive,required"`
	Locations []forecast.Location `validate:"-"`
}

func (q *compareQuery) bind(c *fiber.Ctx) error {
	if err := q.viewQuery.bind(c); err != nil {
		return err
	}

	for _, v := range c.Context().QueryArgs().PeekMulti("location") {
		q.Raw = append(q.Raw, strings.TrimSpace(string(v)))
	}
	if len(q.Raw) == 0 {
		return errors.New("at least one location query parameter is required")
	}
	if err := validate.Struct(q); err != nil {
		return err
	}

	q.Locations = make([]forecast.Location, 0, len(q.Raw))
	for _, raw := range q.Raw {
		loc, err := parseLocation(raw)
		if err != nil {
			return err
		}
		q.Locations = append(q.Locations, loc)
	}
	return nil
}

type coordinates struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// parseLocation accepts "lat,lon" or, failing that, a free-text place name.
func parseLocation(s string) (forecast.Location, error) {
	if parts := strings.Split(s, ","); len(parts) == 2 {
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if latErr == nil && lonErr == nil {
			if err := validate.Struct(coordinates{Lat: lat, Lon: lon}); err != nil {
				return forecast.Location{}, fmt.Errorf("location %q: coordinates out of range", s)
			}
			return forecast.Location{Lat: &lat, Lon: &lon}, nil
		}
	}
	if s == "" {
		return forecast.Location{}, errors.New("location must not be empty")
	}
	return forecast.Location{Name: s}, nil
}

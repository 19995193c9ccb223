package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/farmii/farm-advisory/internal/chat"
	"github.com/farmii/farm-advisory/internal/geo"
	"github.com/farmii/farm-advisory/internal/market"
	"github.com/farmii/farm-advisory/internal/store"
	"github.com/farmii/farm-advisory/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, bot *chat.Bot) {
	v1 := app.Group("/api/v1")

	v1.Get("/advisories", func(c *fiber.Ctx) error {
		q, err := parseAdvisoryQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.GetReport(c.UserContext(), q.toQuery(), q.Days)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrMissingLocation):
				return fiber.NewError(fiber.StatusBadRequest, "Provide city or lat & lon")
			case errors.Is(err, geo.ErrNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Location not found")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "failed to build advisory report")
			}
		}

		return c.JSON(fiber.Map{
			"status":     "ok",
			"location":   report.Location,
			"current":    report.Current,
			"daily":      report.Daily,
			"advisories": report.Advisories,
			"source":     report.Source,
		})
	})

	v1.Get("/advisories/latest", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.GetLatest(loc.toLocation())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no advisory report for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch advisory report")
		}

		return c.JSON(report)
	})

	v1.Get("/advisories/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		reports, err := service.GetRange(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no advisory history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch advisory history")
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"from":     req.From,
			"to":       req.To,
			"reports":  reports,
		})
	})

	v1.Post("/chat", func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(bot.Respond(req.Message))
	})

	v1.Get("/market/prices", func(c *fiber.Ctx) error {
		commodity := c.Query("commodity")
		if commodity == "" {
			return c.JSON(fiber.Map{"prices": market.List()})
		}

		price, err := market.Lookup(commodity)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(price)
	})
}

// advisoryQuery holds query parameters for the advisory endpoint. Either
// City or both coordinates must be present; the service rejects queries
// with neither.
type advisoryQuery struct {
	City string
	Lat  *float64
	Lon  *float64
	Days int
}

func (q advisoryQuery) toQuery() weather.Query {
	return weather.Query{City: q.City, Lat: q.Lat, Lon: q.Lon}
}

func parseAdvisoryQuery(c *fiber.Ctx) (advisoryQuery, error) {
	q := advisoryQuery{City: c.Query("city")}

	lat, err := parseOptionalFloat(c.Query("lat"), "lat")
	if err != nil {
		return q, err
	}
	lon, err := parseOptionalFloat(c.Query("lon"), "lon")
	if err != nil {
		return q, err
	}
	q.Lat = lat
	q.Lon = lon

	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return q, errors.New("days must be an integer")
	}
	// Out-of-range values are clamped by the service, not rejected.
	q.Days = days

	return q, nil
}

func parseOptionalFloat(s, name string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New(name + " must be a number")
	}
	return &v, nil
}

// chatRequest is the body of the chat endpoint.
type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

// locationQuery holds query parameters identifying a tracked location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
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

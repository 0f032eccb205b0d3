package countries

import (
	"errors"
	"net/url"

	"country-exchange/core/logger"
	"country-exchange/feature/countries/models"
	"country-exchange/feature/countries/refresh"
	"country-exchange/feature/countries/store"
	"country-exchange/feature/countries/summary"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for countries.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the countries routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/countries")
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/", h.HandleList)
	group.Get("/image", h.HandleImage)
	group.Get("/:name", h.HandleGet)
	group.Delete("/:name", h.HandleDelete)

	app.Get("/status", h.HandleStatus)
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Internal server error"})
}

func countryNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Country not found"})
}

// HandleRefresh fetches both upstream sources and replaces the cached countries.
// @Summary Refresh Countries
// @Description Fetch countries and exchange rates, recompute estimated GDP and upsert every country. The summary image is regenerated in the background.
// @Tags countries
// @Produce json
// @Success 200 {object} models.RefreshResponse "Refresh result"
// @Failure 503 {object} models.ErrorResponse "External data source unavailable"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /countries/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	res, err := h.service.Refresh(c.UserContext())
	if err != nil {
		var rerr *refresh.Error
		if errors.As(err, &rerr) && rerr.Kind == refresh.KindSourceUnavailable {
			l.Warn("Refresh aborted: source unavailable", zap.String("source", rerr.Source), zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
				Error:   "External data source unavailable",
				Details: "Could not fetch data from " + rerr.Source,
			})
		}
		l.Error("Refresh failed", zap.Error(err))
		return internalError(c)
	}

	l.Info("Refresh completed",
		zap.Int("processed", res.ProcessedCount),
		zap.Int64("total", res.TotalCount),
	)
	return c.JSON(models.RefreshResponse{
		Message:            "Countries refreshed successfully",
		CountriesProcessed: res.ProcessedCount,
		TotalCountries:     res.TotalCount,
		LastRefreshedAt:    res.LastRefreshedAt,
	})
}

// HandleList returns cached countries.
// @Summary List Countries
// @Description List cached countries with optional filters and sorting.
// @Tags countries
// @Produce json
// @Param region query string false "Region, case-insensitive (e.g. 'Africa')"
// @Param currency query string false "Currency code, case-insensitive (e.g. 'NGN')"
// @Param sort query string false "gdp_desc, gdp_asc, name_asc or name_desc"
// @Success 200 {array} models.Country "Countries"
// @Failure 400 {object} models.ErrorResponse "Validation failed"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /countries [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	filter := store.Filter{
		Region:   c.Query("region"),
		Currency: c.Query("currency"),
		Sort:     c.Query("sort"),
	}
	if err := filter.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Validation failed",
			Details: fiber.Map{"sort": "must be one of gdp_desc, gdp_asc, name_asc, name_desc"},
		})
	}

	list, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("List countries failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(list)
}

// HandleGet returns one country.
// @Summary Get Country
// @Description Get a cached country by name (case-insensitive).
// @Tags countries
// @Produce json
// @Param name path string true "Country name (e.g. 'Nigeria')"
// @Success 200 {object} models.Country "Country"
// @Failure 404 {object} models.ErrorResponse "Country not found"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /countries/{name} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	name := paramName(c)

	country, err := h.service.Get(c.UserContext(), name)
	if errors.Is(err, store.ErrNotFound) {
		return countryNotFound(c)
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Get country failed", zap.String("name", name), zap.Error(err))
		return internalError(c)
	}
	return c.JSON(country)
}

// HandleDelete removes one country.
// @Summary Delete Country
// @Description Delete a cached country by name (case-insensitive).
// @Tags countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} models.MessageResponse "Deleted"
// @Failure 404 {object} models.ErrorResponse "Country not found"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /countries/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	name := paramName(c)
	l := logger.WithRayID(h.logger, c)

	err := h.service.Delete(c.UserContext(), name)
	if errors.Is(err, store.ErrNotFound) {
		return countryNotFound(c)
	}
	if err != nil {
		l.Error("Delete country failed", zap.String("name", name), zap.Error(err))
		return internalError(c)
	}

	l.Info("Country deleted", zap.String("name", name))
	return c.JSON(models.MessageResponse{Message: "Country '" + name + "' deleted successfully"})
}

// HandleImage serves the summary image.
// @Summary Summary Image
// @Description Get the summary image generated by the last successful refresh.
// @Tags countries
// @Produce png
// @Success 200 {file} binary "PNG image"
// @Failure 404 {object} models.ErrorResponse "Summary image not found"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /countries/image [get]
func (h *Handler) HandleImage(c *fiber.Ctx) error {
	data, err := h.service.SummaryImage(c.UserContext())
	if errors.Is(err, summary.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Summary image not found"})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Load summary image failed", zap.Error(err))
		return internalError(c)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(data)
}

// HandleStatus reports cache size and freshness.
// @Summary Status
// @Description Total cached countries and the last refresh time.
// @Tags status
// @Produce json
// @Success 200 {object} models.Status "Status"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	status, err := h.service.Status(c.UserContext())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Status failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(status)
}

// paramName returns the decoded :name path parameter.
func paramName(c *fiber.Ctx) string {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Params("name")
	}
	return name
}

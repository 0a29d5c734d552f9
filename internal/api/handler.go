package api

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/fxpulse/internal/analytics"
	"github.com/guttosm/fxpulse/internal/domain/dto"
	"github.com/guttosm/fxpulse/internal/domain/models"
	"github.com/guttosm/fxpulse/internal/middleware"
	"github.com/guttosm/fxpulse/internal/ratefeed"
	"github.com/guttosm/fxpulse/internal/service"
)

// Handler provides HTTP handlers for the exchange-rate dashboard.
//
// Responsibilities:
//   - Validate incoming query parameters and bodies
//   - Delegate to the dashboard service with the request context
//   - Translate domain results into response DTOs
//   - Map domain errors to HTTP status codes
type Handler struct {
	svc service.DashboardService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.DashboardService) *Handler {
	return &Handler{svc: svc}
}

// GetYears handles GET /api/v1/years.
//
// GetYears godoc
// @Summary      List data years
// @Description  Returns the years for which historical rate reports are available
// @Tags         history
// @Produce      json
// @Success      200  {object}  dto.YearsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/years [get]
func (h *Handler) GetYears(c *gin.Context) {
	years, err := h.svc.Years(c.Request.Context())
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	if years == nil {
		years = []int{}
	}
	c.JSON(http.StatusOK, dto.YearsResponse{Years: years})
}

// GetCurrencies handles GET /api/v1/currencies.
//
// GetCurrencies godoc
// @Summary      List currencies
// @Description  Returns the currencies that hold data at the selected frequency and year
// @Tags         history
// @Produce      json
// @Param        frequency  query     string  true   "Annual, Monthly, Weekly or Quarterly" example(Monthly)
// @Param        year       query     int     false  "Data year (ignored for Annual)" example(2022)
// @Success      200        {object}  dto.CurrenciesResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/v1/currencies [get]
func (h *Handler) GetCurrencies(c *gin.Context) {
	freq, year, ok := h.selection(c)
	if !ok {
		return
	}

	currencies, err := h.svc.Currencies(c.Request.Context(), freq, year)
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.CurrenciesResponse{Frequency: string(freq), Year: year, Currencies: currencies})
}

// GetTrend handles GET /api/v1/trend.
//
// Query Parameters:
//   - frequency (string, required): Annual | Monthly | Weekly | Quarterly (case-insensitive).
//   - year (int): required unless frequency is Annual, which always spans every year.
//   - currency (string, required): ISO code, e.g. "EUR".
//   - window (int, optional): rolling volatility window, at least 2.
//
// Responses:
//   - 200 OK: aggregated points, peak, trough and volatility.
//   - 400 Bad Request: invalid frequency, year or window.
//   - 404 Not Found: no data for the period, or the currency has no values.
//
// GetTrend godoc
// @Summary      Currency trend
// @Description  Aggregates the selected currency and returns its peak, trough and rolling volatility with risk flags
// @Tags         history
// @Produce      json
// @Param        frequency  query     string  true   "Annual, Monthly, Weekly or Quarterly" example(Quarterly)
// @Param        year       query     int     false  "Data year (ignored for Annual)" example(2022)
// @Param        currency   query     string  true   "Currency code" example(EUR)
// @Param        window     query     int     false  "Volatility window" example(5)
// @Success      200        {object}  dto.TrendResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Failure      500        {object}  dto.ErrorResponse
// @Router       /api/v1/trend [get]
func (h *Handler) GetTrend(c *gin.Context) {
	freq, year, ok := h.selection(c)
	if !ok {
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(c.Query("currency")))
	if currency == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "currency is required", nil)
		return
	}

	window := 0
	if s := c.Query("window"); s != "" {
		w, err := strconv.Atoi(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid window, expected an integer", err)
			return
		}
		if w < 2 {
			h.fail(c, &analytics.InvalidWindowError{Window: w}, http.StatusNotFound)
			return
		}
		window = w
	}

	report, err := h.svc.Trend(c.Request.Context(), service.TrendRequest{
		Frequency: freq,
		Year:      year,
		Currency:  currency,
		Window:    window,
	})
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}

	resp := dto.NewTrendResponse(report)
	if mean, ok := analytics.MeanVolatility(report.Volatility); ok {
		resp.MeanVolatility = &mean
	}
	c.JSON(http.StatusOK, resp)
}

// GetBasketCurrencies handles GET /api/v1/basket/currencies.
//
// GetBasketCurrencies godoc
// @Summary      Basket currencies
// @Description  Returns the currencies a custom basket may contain
// @Tags         basket
// @Produce      json
// @Success      200  {object}  dto.BasketCurrenciesResponse
// @Router       /api/v1/basket/currencies [get]
func (h *Handler) GetBasketCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.BasketCurrenciesResponse{Currencies: slices.Clone(models.BasketCurrencies)})
}

// PostBasket handles POST /api/v1/basket.
//
// Responses:
//   - 200 OK: basket rate, total weight and weighted average.
//   - 400 Bad Request: malformed body, 0 or more than 10 components, weights outside [0, 100].
//   - 422 Unprocessable Entity: a component currency is missing from the live snapshot.
//   - 502 Bad Gateway: the live rate feed failed.
//
// PostBasket godoc
// @Summary      Custom basket rate
// @Description  Computes the weighted rate of a currency basket against a fresh live snapshot
// @Tags         basket
// @Accept       json
// @Produce      json
// @Param        basket  body      dto.BasketRequest  true  "Basket definition"
// @Success      200     {object}  dto.BasketResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/v1/basket [post]
func (h *Handler) PostBasket(c *gin.Context) {
	var req dto.BasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid basket body", err)
		return
	}

	res, err := h.svc.Basket(c.Request.Context(), models.Basket{Base: req.Base, Components: req.Components})
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, dto.NewBasketResponse(res))
}

// GetCurrentRates handles GET /api/v1/rates/current.
//
// A feed failure is answered with 502; it never escapes the handler.
//
// GetCurrentRates godoc
// @Summary      Current rates
// @Description  Returns live spot rates for a base currency, optionally narrowed to one currency
// @Tags         rates
// @Produce      json
// @Param        base      query     string  false  "Base currency (default from config)" example(USD)
// @Param        currency  query     string  false  "Single currency" example(EUR)
// @Success      200       {object}  dto.CurrentRatesResponse
// @Failure      422       {object}  dto.ErrorResponse
// @Failure      502       {object}  dto.ErrorResponse
// @Router       /api/v1/rates/current [get]
func (h *Handler) GetCurrentRates(c *gin.Context) {
	snap, err := h.svc.CurrentRates(c.Request.Context(), c.Query("base"), c.Query("currency"))
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, dto.CurrentRatesResponse{Base: snap.Base, Rates: snap.Rates})
}

// selection parses frequency and year; it writes the 400 response itself and reports ok=false on failure.
func (h *Handler) selection(c *gin.Context) (models.Frequency, int, bool) {
	raw := c.Query("frequency")
	if strings.TrimSpace(raw) == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "frequency is required", nil)
		return "", 0, false
	}
	freq, err := analytics.ParseFrequency(raw)
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return "", 0, false
	}

	if freq == models.Annual {
		return freq, 0, true
	}
	s := c.Query("year")
	if s == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "year is required for "+string(freq)+" frequency", nil)
		return "", 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1 {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid year, expected YYYY", err)
		return "", 0, false
	}
	return freq, year, true
}

// fail maps a domain error to its HTTP status. currencyStatus is the status used
// for a missing currency, which differs between historical and live endpoints.
func (h *Handler) fail(c *gin.Context, err error, currencyStatus int) {
	var (
		freqErr   *analytics.UnknownFrequencyError
		curErr    *analytics.CurrencyNotFoundError
		weightErr *analytics.InvalidWeightError
		sizeErr   *analytics.BasketSizeError
		windowErr *analytics.InvalidWindowError
		netErr    *ratefeed.NetworkError
	)

	switch {
	case errors.Is(err, analytics.ErrEmptyInput):
		middleware.AbortWithError(c, http.StatusNotFound, "No data available for the selected frequency", err)
	case errors.As(err, &freqErr):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid frequency", err)
	case errors.As(err, &curErr):
		middleware.AbortWithError(c, currencyStatus, "Currency '"+curErr.Currency+"' not found", err)
	case errors.As(err, &sizeErr), errors.As(err, &weightErr):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid basket", err)
	case errors.As(err, &windowErr):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid window", err)
	case errors.As(err, &netErr):
		middleware.AbortWithError(c, http.StatusBadGateway, "Error fetching exchange rates", err)
	case errors.Is(err, context.DeadlineExceeded):
		middleware.AbortWithError(c, http.StatusGatewayTimeout, "request timed out", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "internal error", err)
	}
}

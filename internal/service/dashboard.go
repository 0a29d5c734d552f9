package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/guttosm/fxpulse/internal/analytics"
	"github.com/guttosm/fxpulse/internal/domain/models"
	"github.com/guttosm/fxpulse/internal/logger"
	"github.com/guttosm/fxpulse/internal/storage"
)

// SeriesSource yields historical rates for a set of years.
// Implementations must load fresh data on every call.
type SeriesSource interface {
	Years(ctx context.Context) ([]int, error)
	Load(ctx context.Context, years []int) (models.RateSeries, error)
}

// RateFeed yields a live rate snapshot for a base currency.
type RateFeed interface {
	Latest(ctx context.Context, base string) (models.RateSnapshot, error)
}

// TrendRequest selects one dashboard view. Year is ignored for Annual; Window 0 means the default.
type TrendRequest struct {
	Frequency models.Frequency
	Year      int
	Currency  string
	Window    int
}

// DashboardService defines the business operations behind the dashboard API.
type DashboardService interface {
	Years(ctx context.Context) ([]int, error)
	Currencies(ctx context.Context, frequency models.Frequency, year int) ([]string, error)
	Trend(ctx context.Context, req TrendRequest) (*models.TrendReport, error)
	Basket(ctx context.Context, basket models.Basket) (*models.BasketResult, error)
	CurrentRates(ctx context.Context, base, currency string) (models.RateSnapshot, error)
}

type dashboardService struct {
	source       SeriesSource
	feed         RateFeed
	baseCurrency string
	window       int
}

// NewDashboardService wires a source and a feed. baseCurrency is used when a request names
// none; window is the default volatility window.
func NewDashboardService(source SeriesSource, feed RateFeed, baseCurrency string, window int) DashboardService {
	if baseCurrency == "" {
		baseCurrency = "USD"
	}
	if window == 0 {
		window = analytics.DefaultVolatilityWindow
	}
	return &dashboardService{
		source:       source,
		feed:         feed,
		baseCurrency: strings.ToUpper(baseCurrency),
		window:       window,
	}
}

func (s *dashboardService) Years(ctx context.Context) ([]int, error) {
	return s.source.Years(ctx)
}

// Currencies lists the currencies holding at least one value in the aggregated view,
// in source column order.
func (s *dashboardService) Currencies(ctx context.Context, frequency models.Frequency, year int) ([]string, error) {
	agg, err := s.aggregate(ctx, frequency, year)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(agg.Currencies))
	for _, c := range agg.Currencies {
		if agg.Has(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *dashboardService) Trend(ctx context.Context, req TrendRequest) (*models.TrendReport, error) {
	window := req.Window
	if window == 0 {
		window = s.window
	}
	if window < 2 {
		return nil, &analytics.InvalidWindowError{Window: window}
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	agg, err := s.aggregate(ctx, req.Frequency, req.Year)
	if err != nil {
		return nil, err
	}

	peak, trough, err := analytics.Extrema(agg, currency)
	if err != nil {
		return nil, err
	}
	vol, err := analytics.CollectVolatility(agg, currency, window)
	if err != nil {
		return nil, err
	}

	year := req.Year
	if req.Frequency == models.Annual {
		year = 0
	}
	return &models.TrendReport{
		Frequency:  req.Frequency,
		Year:       year,
		Currency:   currency,
		Window:     window,
		Series:     agg,
		Peak:       peak,
		Trough:     trough,
		Volatility: vol,
	}, nil
}

// Basket validates the components before fetching, so a bad request never reaches the feed.
func (s *dashboardService) Basket(ctx context.Context, basket models.Basket) (*models.BasketResult, error) {
	base := s.base(basket.Base)
	components := make([]models.BasketComponent, len(basket.Components))
	for i, c := range basket.Components {
		components[i] = models.BasketComponent{Currency: strings.ToUpper(strings.TrimSpace(c.Currency)), WeightPercent: c.WeightPercent}
	}
	if err := analytics.ValidateBasket(components); err != nil {
		return nil, err
	}

	snapshot, err := s.feed.Latest(ctx, base)
	if err != nil {
		return nil, err
	}
	res, err := analytics.BasketRate(base, components, snapshot)
	if err != nil {
		return nil, err
	}
	logger.L().Debug().Str("base", base).Int("components", len(components)).Float64("basket_rate", res.BasketRate).Msg("basket computed")
	return &res, nil
}

// CurrentRates returns the whole snapshot, or only currency's rate when currency is set.
func (s *dashboardService) CurrentRates(ctx context.Context, base, currency string) (models.RateSnapshot, error) {
	snapshot, err := s.feed.Latest(ctx, s.base(base))
	if err != nil {
		return models.RateSnapshot{}, err
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return snapshot, nil
	}
	v, ok := snapshot.Rates[currency]
	if !ok {
		return models.RateSnapshot{}, &analytics.CurrencyNotFoundError{Currency: currency, Where: "snapshot"}
	}
	return models.RateSnapshot{Base: snapshot.Base, Rates: map[string]float64{currency: v}}, nil
}

func (s *dashboardService) base(b string) string {
	b = strings.ToUpper(strings.TrimSpace(b))
	if b == "" {
		return s.baseCurrency
	}
	return b
}

// aggregate loads the years the frequency needs, scopes and aggregates them.
// Annual reads every available year; other frequencies read only the selected one.
func (s *dashboardService) aggregate(ctx context.Context, frequency models.Frequency, year int) (models.AggregatedSeries, error) {
	if !frequency.Valid() {
		return models.AggregatedSeries{}, &analytics.UnknownFrequencyError{Value: string(frequency)}
	}

	available, err := s.source.Years(ctx)
	if err != nil {
		return models.AggregatedSeries{}, fmt.Errorf("list years: %w", err)
	}

	years := available
	if frequency != models.Annual {
		if !slices.Contains(available, year) {
			return models.AggregatedSeries{}, fmt.Errorf("year %d: %w", year, analytics.ErrEmptyInput)
		}
		years = []int{year}
	}
	if len(years) == 0 {
		return models.AggregatedSeries{}, analytics.ErrEmptyInput
	}

	series, err := s.source.Load(ctx, years)
	if err != nil {
		return models.AggregatedSeries{}, fmt.Errorf("load years %v: %w", years, err)
	}
	return analytics.Aggregate(analytics.Scope(series, frequency, year), frequency)
}

// repositorySource adapts the Postgres repository to SeriesSource.
type repositorySource struct {
	repo storage.RatesRepository
}

// NewRepositorySource serves historical rates from the ingestion store.
func NewRepositorySource(repo storage.RatesRepository) SeriesSource {
	return &repositorySource{repo: repo}
}

func (r *repositorySource) Years(ctx context.Context) ([]int, error) {
	return r.repo.AvailableYears(ctx)
}

func (r *repositorySource) Load(ctx context.Context, years []int) (models.RateSeries, error) {
	return r.repo.LoadSeries(ctx, years)
}

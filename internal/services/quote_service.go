package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"rate-engine-service/internal/engine"
	"rate-engine-service/internal/models"
)

// CatalogStore is the catalog lookup the quote service needs. Fetching and
// freshness of the snapshot are the store's concern; the engine only sees
// in-memory values.
type CatalogStore interface {
	GetItemsBySKUs(ctx context.Context, companyID string, skus []string) (map[string]models.Item, error)
	ListActiveBoxes(ctx context.Context, companyID string) ([]models.Box, error)
}

// PolicyStore supplies a company's shipping rules and preferences.
type PolicyStore interface {
	ListActiveRules(ctx context.Context, companyID string) ([]models.ShippingRule, error)
	GetOrCreateShippingPrefs(ctx context.Context, companyID string) (*models.CompanyShippingPrefs, error)
}

// EventPublisher publishes engine lifecycle events. Implementations must be
// safe to call with best-effort semantics; publishing never fails a request.
type EventPublisher interface {
	PublishPackingCompleted(ctx context.Context, companyID, orderID string, groupCount int, boxCost float64) error
	PublishQuoteCompleted(ctx context.Context, companyID, orderID string, groupCount, rateCount int) error
}

// QuoteService runs the cartonization and rate decision pipeline for an
// order: resolve catalog, pack, then per shipping group normalize raw quotes,
// evaluate policy, rank and apply markup. The service holds no request state;
// it is safe for concurrent use.
type QuoteService struct {
	catalog CatalogStore
	policy  PolicyStore
	events  EventPublisher
	logger  *logrus.Entry
}

// NewQuoteService creates a new quote service
func NewQuoteService(catalog CatalogStore, policy PolicyStore, events EventPublisher, logger *logrus.Logger) *QuoteService {
	return &QuoteService{
		catalog: catalog,
		policy:  policy,
		events:  events,
		logger:  logger.WithField("component", "quote-service"),
	}
}

// PackOrder cartonizes the order's items against the company's box catalog.
func (s *QuoteService) PackOrder(ctx context.Context, companyID string, req models.PackRequest) (*models.PackingResult, error) {
	items, err := s.resolveItems(ctx, companyID, req.Items)
	if err != nil {
		return nil, err
	}

	boxes, err := s.catalog.ListActiveBoxes(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load box catalog: %w", err)
	}

	result, err := engine.Pack(items, boxes)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"order_id":   req.OrderID,
		"groups":     len(result.Groups),
		"box_cost":   result.TotalBoxCost(),
	}).Info("packing completed")

	if s.events != nil {
		if err := s.events.PublishPackingCompleted(ctx, companyID, req.OrderID, len(result.Groups), result.TotalBoxCost()); err != nil {
			s.logger.WithError(err).Warn("failed to publish packing event")
		}
	}
	return result, nil
}

// QuoteOrder runs the full pipeline and returns ranked, marked-up rates per
// shipping group. Raw quotes are supplied by the caller; a quote that fails
// normalization is reported per group without failing the batch. Zero
// surviving rates for a group is a valid outcome, not an error.
func (s *QuoteService) QuoteOrder(ctx context.Context, companyID string, req models.QuoteRequest) (*models.QuoteResponse, error) {
	packing, err := s.PackOrder(ctx, companyID, models.PackRequest{OrderID: req.OrderID, Items: req.Items})
	if err != nil {
		return nil, err
	}

	rules, err := s.policy.ListActiveRules(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipping rules: %w", err)
	}
	prefs, err := s.policy.GetOrCreateShippingPrefs(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipping prefs: %w", err)
	}

	groups := packing.Groups
	quotes := make([]models.GroupQuote, len(groups))

	// Rate each group independently. The engine stages are pure, so the only
	// coordination needed is the indexed result slot per goroutine.
	var wg sync.WaitGroup
	for i := range groups {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			quotes[idx] = s.rateGroup(groups[idx], groupRawRates(req, idx), rules, *prefs, req.OrderValue)
		}(i)
	}
	wg.Wait()

	rateCount := 0
	for _, gq := range quotes {
		rateCount += len(gq.Rates)
	}

	s.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"order_id":   req.OrderID,
		"groups":     len(groups),
		"rates":      rateCount,
	}).Info("quote completed")

	if s.events != nil {
		if err := s.events.PublishQuoteCompleted(ctx, companyID, req.OrderID, len(groups), rateCount); err != nil {
			s.logger.WithError(err).Warn("failed to publish quote event")
		}
	}

	return &models.QuoteResponse{OrderID: req.OrderID, Groups: quotes}, nil
}

// rateGroup runs normalize -> evaluate -> rank -> markup for one group.
func (s *QuoteService) rateGroup(group models.ShippingGroup, raws []models.RawRate, rules []models.ShippingRule, prefs models.CompanyShippingPrefs, orderValue float64) models.GroupQuote {
	normalized, failures := engine.NormalizeAll(raws)
	scored := engine.Evaluate(normalized, rules, prefs, orderValue)
	ranked := engine.Rank(scored, prefs.OptimizationObjective, prefs.SLAPreference)
	priced := engine.ApplyMarkup(ranked, prefs)

	return models.GroupQuote{
		Group:    group,
		Rates:    priced,
		Failures: failures,
	}
}

func (s *QuoteService) resolveItems(ctx context.Context, companyID string, reqItems []models.OrderItemRequest) ([]models.ItemQuantity, error) {
	if len(reqItems) == 0 {
		return nil, engine.ErrNoItemsToPack
	}

	skus := make([]string, 0, len(reqItems))
	for _, ri := range reqItems {
		skus = append(skus, ri.SKU)
	}

	bySKU, err := s.catalog.GetItemsBySKUs(ctx, companyID, skus)
	if err != nil {
		return nil, err
	}

	items := make([]models.ItemQuantity, 0, len(reqItems))
	for _, ri := range reqItems {
		items = append(items, models.ItemQuantity{Item: bySKU[ri.SKU], Quantity: ri.Quantity})
	}
	return items, nil
}

// groupRawRates picks the raw quote set for a group: the per-group set when
// the caller supplied one aligned with the packing result, otherwise the
// shared order-level set.
func groupRawRates(req models.QuoteRequest, idx int) []models.RawRate {
	if idx < len(req.GroupQuotes) {
		return req.GroupQuotes[idx]
	}
	return req.Quotes
}

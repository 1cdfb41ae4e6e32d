package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/model"
	"backoffice/internal/selection"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Notice texts of the tax workflow.
const (
	noticeTaxAssigned      = "Impuesto asignado al producto"
	noticeBatchApplied     = "Impuesto aplicado a %d productos"
	noticeBatchAppliedOne  = "Impuesto aplicado a 1 producto"
	noticeBatchPartialTail = ", %d fallidos"
)

// taxService implements TaxService.
type taxService struct {
	api    TaxAPI
	loader selection.Loader
	logger zerolog.Logger
}

// NewTaxService creates a new tax service. loader may be nil when selection files are not supported.
func NewTaxService(api TaxAPI, loader selection.Loader, logger zerolog.Logger) TaxService {
	return &taxService{
		api:    api,
		loader: loader,
		logger: logger.With().Str("service", "tax").Logger(),
	}
}

func (s *taxService) List(ctx context.Context) ([]model.Tax, error) {
	taxes, err := s.api.ListTaxes(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch taxes")
		return nil, fmt.Errorf("failed to list taxes: %w", err)
	}
	return taxes, nil
}

func (s *taxService) Create(ctx context.Context, tax model.Tax) (*model.Tax, error) {
	if err := validateTax(tax); err != nil {
		return nil, err
	}

	created, err := s.api.CreateTax(ctx, tax)
	if err != nil {
		s.logger.Error().Err(err).Str("code", tax.Code).Msg("failed to create tax")
		return nil, fmt.Errorf("failed to create tax: %w", err)
	}

	s.logger.Info().Str("tax_id", created.ID.String()).Str("code", created.Code).Msg("tax created")
	return &created, nil
}

func (s *taxService) Update(ctx context.Context, id string, tax model.Tax) (*model.Tax, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrMissingID
	}
	if err := validateTax(tax); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateTax(ctx, id, tax)
	if err != nil {
		s.logger.Error().Err(err).Str("tax_id", id).Msg("failed to update tax")
		return nil, fmt.Errorf("failed to update tax: %w", err)
	}
	return &updated, nil
}

func (s *taxService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return model.ErrMissingID
	}

	if err := s.api.DeleteTax(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("tax_id", id).Msg("failed to delete tax")
		return fmt.Errorf("failed to delete tax: %w", err)
	}
	return nil
}

func (s *taxService) Assign(ctx context.Context, productID, taxID string, opts model.AssignmentOptions) (model.Notice, error) {
	if strings.TrimSpace(productID) == "" || strings.TrimSpace(taxID) == "" {
		return model.Notice{}, model.ErrMissingID
	}
	if err := validateRate(opts.CustomRate); err != nil {
		return model.Notice{}, err
	}

	if err := s.api.AssignTax(ctx, productID, taxID, opts); err != nil {
		s.logger.Error().
			Err(err).
			Str("product_id", productID).
			Str("tax_id", taxID).
			Msg("failed to assign tax")
		return model.Failure("No se pudo asignar el impuesto"), fmt.Errorf("failed to assign tax: %w", err)
	}

	s.logger.Info().
		Str("product_id", productID).
		Str("tax_id", taxID).
		Bool("is_exempt", opts.IsExempt).
		Msg("tax assigned")
	return model.Success(noticeTaxAssigned), nil
}

func (s *taxService) AssignBatch(ctx context.Context, taxID string, req model.BatchAssignRequest) (*model.BatchOutcome, error) {
	if strings.TrimSpace(taxID) == "" {
		return nil, model.ErrMissingID
	}
	if err := validateRate(req.CustomRate); err != nil {
		return nil, err
	}

	set := selection.NewSet(req.ProductIDs...)
	if req.SelectionFile != "" {
		if s.loader == nil {
			return nil, model.NewValidationError("selectionFile", "Selection files are not enabled")
		}
		loaded, err := s.loader.Load(ctx, req.SelectionFile)
		if errors.Is(err, selection.ErrInvalidName) {
			return nil, model.NewValidationError("selectionFile", "Selection file must be a name inside the selection directory")
		}
		if err != nil {
			s.logger.Error().Err(err).Str("tax_id", taxID).Msg("failed to load selection file")
			return nil, fmt.Errorf("failed to load selection file: %w", err)
		}
		set.Merge(loaded)
	}
	if set.Size() == 0 {
		return nil, model.ErrEmptySelection
	}

	ids := set.IDs()
	opts := model.AssignmentOptions{IsExempt: req.IsExempt, CustomRate: req.CustomRate}

	body, err := s.api.BatchAssignTax(ctx, taxID, ids, opts)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("tax_id", taxID).
			Int("product_count", len(ids)).
			Msg("batch tax assignment failed")
		return nil, fmt.Errorf("failed to assign tax in batch: %w", err)
	}

	outcome := s.outcome(taxID, ids, body)

	s.logger.Info().
		Str("tax_id", taxID).
		Int("succeeded", len(outcome.Succeeded)).
		Int("failed", len(outcome.Failed)).
		Msg("batch tax assignment applied")
	return outcome, nil
}

// batchItem is one per-product entry of a batch response.
type batchItem struct {
	ProductID model.ID        `json:"product_id"`
	Success   *bool           `json:"success"`
	Error     json.RawMessage `json:"error"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
	Data    struct {
		Results []batchItem `json:"results"`
	} `json:"data"`
}

// outcome splits the selection by the per-product results when the API reports them. Without
// them the call is all-or-nothing and every product counts as succeeded.
func (s *taxService) outcome(taxID string, ids []string, body []byte) *model.BatchOutcome {
	out := &model.BatchOutcome{TaxID: taxID, Succeeded: []string{}}

	var resp batchResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			s.logger.Warn().Err(err).Str("tax_id", taxID).Msg("unreadable batch response, assuming full success")
		}
	}
	items := resp.Results
	if len(items) == 0 {
		items = resp.Data.Results
	}

	selected := selection.NewSet(ids...)
	failed := make(map[string]string)
	for _, it := range items {
		id := it.ProductID.String()
		if !selected.Contains(id) {
			s.logger.Warn().Str("tax_id", taxID).Str("product_id", id).Msg("batch result for unselected product ignored")
			continue
		}
		if it.Success != nil && !*it.Success {
			failed[id] = itemError(it.Error)
		}
	}

	for _, id := range ids {
		if _, ok := failed[id]; !ok {
			out.Succeeded = append(out.Succeeded, id)
		}
	}
	if len(failed) > 0 {
		out.Failed = failed
	}

	msg := fmt.Sprintf(noticeBatchApplied, len(out.Succeeded))
	if len(out.Succeeded) == 1 {
		msg = noticeBatchAppliedOne
	}
	switch {
	case len(failed) == 0:
		out.Notice = model.Success(msg)
	case len(out.Succeeded) == 0:
		out.Notice = model.Failure(msg + fmt.Sprintf(noticeBatchPartialTail, len(failed)))
	default:
		out.Notice = model.Notice{Level: model.NoticeInfo, Message: msg + fmt.Sprintf(noticeBatchPartialTail, len(failed))}
	}
	return out
}

func itemError(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "failed"
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg
	}
	return string(raw)
}

func validateTax(tax model.Tax) error {
	v := &model.ValidationError{}
	if strings.TrimSpace(tax.Name) == "" {
		v.Add("name", "Name is required")
	}
	if strings.TrimSpace(tax.Code) == "" {
		v.Add("code", "Code is required")
	}
	if tax.Rate.IsNegative() {
		v.Add("rate", "Rate must be a non-negative number")
	}
	return v.OrNil()
}

func validateRate(rate *decimal.Decimal) error {
	if rate != nil && rate.IsNegative() {
		return model.ErrInvalidRate
	}
	return nil
}

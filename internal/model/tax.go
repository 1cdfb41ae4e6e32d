package model

import "github.com/shopspring/decimal"

// Tax is a tax rule configured in the store.
type Tax struct {
	ID           ID              `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Rate         decimal.Decimal `json:"rate"`
	IsPercentage bool            `json:"is_percentage"`
	AppliesToAll bool            `json:"applies_to_all"`
	Active       bool            `json:"active"`
}

// ProductTax is the per-product override of a tax.
type ProductTax struct {
	TaxID      ID               `json:"tax_id"`
	IsExempt   bool             `json:"is_exempt"`
	CustomRate *decimal.Decimal `json:"custom_rate,omitempty"`
}

// AssignmentOptions carries the override semantics of an assignment.
type AssignmentOptions struct {
	IsExempt   bool             `json:"is_exempt"`
	CustomRate *decimal.Decimal `json:"custom_rate,omitempty"`
}

// BatchAssignRequest is the console body for a batch assignment.
type BatchAssignRequest struct {
	ProductIDs    []string         `json:"productIds"`
	SelectionFile string           `json:"selectionFile,omitempty"`
	IsExempt      bool             `json:"is_exempt"`
	CustomRate    *decimal.Decimal `json:"custom_rate,omitempty"`
}

// BatchOutcome reports per-product results of a batch assignment.
type BatchOutcome struct {
	TaxID     string            `json:"taxId"`
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed,omitempty"`
	Notice    Notice            `json:"notice"`
}

// EffectiveRate previews the rate a product would carry: exemption wins, then a custom rate, then the base rate.
func EffectiveRate(tax Tax, pt *ProductTax) decimal.Decimal {
	if pt == nil {
		return tax.Rate
	}
	if pt.IsExempt {
		return decimal.Zero
	}
	if pt.CustomRate != nil {
		return *pt.CustomRate
	}
	return tax.Rate
}

// TaxAmount previews the tax charged on base, reading the rate as a percentage or a flat amount.
func TaxAmount(tax Tax, pt *ProductTax, base decimal.Decimal) decimal.Decimal {
	rate := EffectiveRate(tax, pt)
	if !tax.IsPercentage {
		return rate
	}
	return base.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}

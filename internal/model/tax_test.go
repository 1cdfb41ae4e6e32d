package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveRate(t *testing.T) {
	iva := Tax{ID: "5", Name: "IVA", Code: "IVA16", Rate: decimal.NewFromInt(16), IsPercentage: true}
	custom := decimal.NewFromInt(8)

	tests := []struct {
		name     string
		override *ProductTax
		expected string
	}{
		{name: "No override", override: nil, expected: "16"},
		{name: "Exempt", override: &ProductTax{TaxID: "5", IsExempt: true, CustomRate: &custom}, expected: "0"},
		{name: "Custom rate", override: &ProductTax{TaxID: "5", CustomRate: &custom}, expected: "8"},
		{name: "Plain association", override: &ProductTax{TaxID: "5"}, expected: "16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveRate(iva, tt.override).String())
		})
	}
}

func TestTaxAmount(t *testing.T) {
	base := decimal.RequireFromString("200")

	percent := Tax{Rate: decimal.NewFromInt(16), IsPercentage: true}
	assert.Equal(t, "32", TaxAmount(percent, nil, base).String())

	flat := Tax{Rate: decimal.RequireFromString("5.5"), IsPercentage: false}
	assert.Equal(t, "5.5", TaxAmount(flat, nil, base).String())

	assert.True(t, TaxAmount(percent, &ProductTax{IsExempt: true}, base).IsZero())
}

package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Notice levels.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// Notice is a transient message shown to the operator.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Success builds a success notice.
func Success(message string) Notice {
	return Notice{Level: NoticeSuccess, Message: message}
}

// Failure builds an error notice.
func Failure(message string) Notice {
	return Notice{Level: NoticeError, Message: message}
}

// FormatCurrency renders an amount as "$1,234.50".
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + "$" + b.String() + "." + frac
}

package model

import "strings"

// Status is an order lifecycle label as stored by the store API.
type Status string

const (
	StatusPendingPayment Status = "pendiente por pagar"
	StatusPaidProcessing Status = "pagado y procesando"
	StatusShipped        Status = "enviado"
	StatusDelivered      Status = "entregado"
	StatusCancelled      Status = "cancelado"
)

// Statuses lists every status in lifecycle order, cancellation last.
var Statuses = []Status{
	StatusPendingPayment,
	StatusPaidProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

var statusLabels = map[Status]string{
	StatusPendingPayment: "Pendiente por pagar",
	StatusPaidProcessing: "Pagado y procesando",
	StatusShipped:        "Enviado",
	StatusDelivered:      "Entregado",
	StatusCancelled:      "Cancelado",
}

var statusAliases = map[string]Status{
	"pending":         StatusPendingPayment,
	"pending_payment": StatusPendingPayment,
	"pendiente":       StatusPendingPayment,
	"paid":            StatusPaidProcessing,
	"processing":      StatusPaidProcessing,
	"pagado":          StatusPaidProcessing,
	"shipped":         StatusShipped,
	"delivered":       StatusDelivered,
	"cancelled":       StatusCancelled,
	"canceled":        StatusCancelled,
	"cancelada":       StatusCancelled,
}

// ParseStatus accepts canonical labels, display labels and a few English aliases.
func ParseStatus(raw string) (Status, error) {
	key := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if s := Status(key); s.Valid() {
		return s, nil
	}
	if s, ok := statusAliases[strings.ReplaceAll(key, " ", "_")]; ok {
		return s, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether s is one of the five lifecycle labels.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the badge text shown to operators.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Terminal reports whether no forward move exists from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Rank is the position of s in the forward lifecycle; cancellation ranks last.
func (s Status) Rank() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

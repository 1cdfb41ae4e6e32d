package normalize

import (
	"testing"

	"backoffice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapList_KnownShapes(t *testing.T) {
	list := `[{"id":1,"status":"enviado"},{"id":2,"status":"entregado"}]`

	shapes := map[string]string{
		"bare array":      list,
		"data wrapper":    `{"data":` + list + `}`,
		"orders wrapper":  `{"orders":` + list + `}`,
		"items wrapper":   `{"items":` + list + `}`,
		"results wrapper": `{"results":` + list + `,"count":2}`,
	}

	for name, payload := range shapes {
		t.Run(name, func(t *testing.T) {
			records, err := UnwrapList([]byte(payload))

			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, "1", str(records[0]["id"]))
			assert.Equal(t, "entregado", records[1]["status"])
		})
	}
}

func TestUnwrapList_NestedWrapper(t *testing.T) {
	records, err := UnwrapList([]byte(`{"data":{"orders":[{"id":"a"}],"total":1}}`))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0]["id"])
}

func TestUnwrapList_SkipsNonObjects(t *testing.T) {
	records, err := UnwrapList([]byte(`{"data":[{"id":1}, 7, "x", null]}`))

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestUnwrapList_UnexpectedShape(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "Object without wrapper", payload: `{"message":"ok"}`},
		{name: "Wrapper holding scalar", payload: `{"data":"nope"}`},
		{name: "Scalar root", payload: `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := UnwrapList([]byte(tt.payload))

			assert.ErrorIs(t, err, ErrUnexpectedShape)
			assert.Empty(t, records)
		})
	}
}

func TestUnwrapList_InvalidJSON(t *testing.T) {
	_, err := UnwrapList([]byte(`{"data":[`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode payload")
}

func TestUnwrapObject(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "Bare object", payload: `{"id":9,"status":"enviado"}`},
		{name: "Data wrapper", payload: `{"data":{"id":9,"status":"enviado"}}`},
		{name: "Order wrapper", payload: `{"order":{"id":9,"status":"enviado"}}`},
		{name: "Nested wrappers", payload: `{"data":{"order":{"id":9,"status":"enviado"}}}`},
		{name: "Single element array", payload: `[{"id":9,"status":"enviado"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := UnwrapObject([]byte(tt.payload))

			require.NoError(t, err)
			assert.Equal(t, "9", str(rec["id"]))
		})
	}

	_, err := UnwrapObject([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestUnmarshalList(t *testing.T) {
	var products []model.Product

	err := UnmarshalList([]byte(`{"data":[{"id":3,"name":"Café","price":"12.50","stock":4}]}`), &products)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, model.ID("3"), products[0].ID)
	assert.Equal(t, "12.5", products[0].Price.String())
}

func TestUnmarshalObject(t *testing.T) {
	var tax model.Tax

	err := UnmarshalObject([]byte(`{"data":{"id":"5","name":"IVA","code":"IVA16","rate":16,"is_percentage":true}}`), &tax)

	require.NoError(t, err)
	assert.Equal(t, model.ID("5"), tax.ID)
	assert.True(t, tax.IsPercentage)
}

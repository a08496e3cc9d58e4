package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vendoro/vendoro/internal/i18n"
)

type companyPayload struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	TIN         string `json:"tin" validate:"required,len=10,numeric"`
	Description string `json:"description" validate:"required,min=50"`
}

var companyTestSchema = Schema{
	Namespace: "schemas.company",
	Messages: map[string]string{
		"id":          "invalidId",
		"name":        "invalidName",
		"tin.len":     "invalidTin",
		"tin.numeric": "numericTin",
		"description": "invalidDescription",
	},
}

type priceTypeRef struct {
	PriceTypeID string `json:"priceTypeId" validate:"required"`
}

type availableDataPayload struct {
	StockID    string         `json:"stockId" validate:"required"`
	PriceTypes []priceTypeRef `json:"priceTypes" validate:"dive"`
}

type rolePayload struct {
	Name          string                 `json:"name" validate:"required"`
	AvailableData []availableDataPayload `json:"availableData" validate:"dive"`
}

var roleTestSchema = Schema{
	Namespace: "schemas.role",
	Messages: map[string]string{
		"name":        "invalidName",
		"stockId":     "invalidStockId",
		"priceTypeId": "invalidPriceTypeId",
	},
}

func translator(loc i18n.Locale) i18n.Translator {
	return i18n.NewBundle().Locale(loc)
}

func validCompany() companyPayload {
	return companyPayload{
		ID:          "c1",
		Name:        "Acme",
		TIN:         "1234567890",
		Description: "A company description that is comfortably longer than fifty characters.",
	}
}

func TestCheckValidPayload(t *testing.T) {
	require.Nil(t, companyTestSchema.Check(validCompany(), translator(i18n.LocaleEN)))
}

func TestCheckTinRules(t *testing.T) {
	t.Run("wrong length", func(t *testing.T) {
		payload := validCompany()
		payload.TIN = "123"
		issues := companyTestSchema.Check(payload, translator(i18n.LocaleEN))
		require.Len(t, issues, 1)
		require.Equal(t, []any{"tin"}, issues[0].Path)
		require.Equal(t, "TIN must be exactly 10 characters long", issues[0].Message)
	})

	t.Run("not numeric", func(t *testing.T) {
		payload := validCompany()
		payload.TIN = "12345abcde"
		issues := companyTestSchema.Check(payload, translator(i18n.LocaleEN))
		require.Len(t, issues, 1)
		require.Equal(t, "TIN must contain only digits", issues[0].Message)
	})
}

func TestCheckCollectsAllIssues(t *testing.T) {
	issues := companyTestSchema.Check(companyPayload{}, translator(i18n.LocaleEN))
	require.Len(t, issues, 4)

	paths := make([][]any, len(issues))
	for i, issue := range issues {
		paths[i] = issue.Path
	}
	require.Contains(t, paths, []any{"id"})
	require.Contains(t, paths, []any{"name"})
	require.Contains(t, paths, []any{"tin"})
	require.Contains(t, paths, []any{"description"})
}

func TestCheckLocalizedMessages(t *testing.T) {
	payload := validCompany()
	payload.Name = ""
	issues := companyTestSchema.Check(payload, translator(i18n.LocaleRU))
	require.Len(t, issues, 1)
	require.Equal(t, "Название компании обязательно", issues[0].Message)
}

func TestCheckNestedPaths(t *testing.T) {
	payload := rolePayload{
		Name: "Manager",
		AvailableData: []availableDataPayload{
			{StockID: "s1", PriceTypes: []priceTypeRef{{PriceTypeID: "p1"}}},
			{StockID: "s2", PriceTypes: []priceTypeRef{{PriceTypeID: "p2"}, {}}},
		},
	}
	issues := roleTestSchema.Check(payload, translator(i18n.LocaleEN))
	require.Len(t, issues, 1)
	require.Equal(t, []any{"availableData", 1, "priceTypes", 1, "priceTypeId"}, issues[0].Path)
	require.Equal(t, "Price type is required", issues[0].Message)
}

func TestCheckUnknownFieldFallsBack(t *testing.T) {
	type oddPayload struct {
		Extra string `json:"extra" validate:"required"`
	}
	issues := Schema{Namespace: "schemas.company"}.Check(oddPayload{}, translator(i18n.LocaleEN))
	require.Len(t, issues, 1)
	require.Equal(t, "Invalid request", issues[0].Message)
}

func TestSplitPath(t *testing.T) {
	require.Equal(t, []any{"tin"}, splitPath("req.tin"))
	require.Equal(t,
		[]any{"availableData", 0, "priceTypes", 1, "priceTypeId"},
		splitPath("req.availableData[0].priceTypes[1].priceTypeId"),
	)
}

package display_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/catalog"
	"github.com/petnolja/petcli/internal/display"
	"github.com/petnolja/petcli/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(s string) api.Scalar { return api.NewScalar(s) }

func sampleItems() []api.Item {
	return []api.Item{
		{
			ID:          num("101"),
			Name:        "연어 사료 2kg",
			Brand:       "펫밀",
			Description: "Grain free &amp; hypoallergenic",
			SellStatus:  api.SellStatusOnSale,
			Stock:       num("12"),
			Price:       num("32000"),
			Categories:  api.Labels{"강아지", "사료", "dog"},
		},
		{
			ID:         num("102"),
			Name:       "캣타워 대형",
			SellStatus: api.SellStatusSoldOut,
			Stock:      num("0"),
			Price:      num("가격문의"),
			Tags:       api.Labels{"cat tower"},
		},
	}
}

func TestPrintItems_ContainsExpectedContent(t *testing.T) {
	var buf bytes.Buffer
	display.PrintItems(&buf, sampleItems())
	output := buf.String()

	assert.Contains(t, output, "Pet Shop Items")
	assert.Contains(t, output, "2 items")
	assert.Contains(t, output, "연어 사료 2kg")
	assert.Contains(t, output, "32,000원")
	assert.Contains(t, output, "stock 12")
	assert.Contains(t, output, "SOLD OUT")
	assert.Contains(t, output, "가격문의")
	// HTML entities should be unescaped
	assert.Contains(t, output, "Grain free & hypoallergenic")
	assert.NotContains(t, output, "&amp;")
}

func TestPrintItems_FallbackName(t *testing.T) {
	var buf bytes.Buffer
	display.PrintItems(&buf, []api.Item{{Brand: "펫밀"}, {ID: num("x")}})
	output := buf.String()

	assert.Contains(t, output, "펫밀")
	assert.Contains(t, output, "Unknown")
}

func TestPrintItemsJSON(t *testing.T) {
	var buf bytes.Buffer
	err := display.PrintItemsJSON(&buf, sampleItems())
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "\n  ")

	var items []display.ItemJSON
	err = json.Unmarshal(buf.Bytes(), &items)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "101", items[0].ID)
	assert.Equal(t, "Grain free & hypoallergenic", items[0].Description)
	assert.True(t, items[0].InStock)
	assert.Equal(t, []string{"DOG", "FOOD"}, items[0].Categories)
	assert.Equal(t, []string{"강아지", "사료", "dog"}, items[0].Labels)
	require.NotNil(t, items[0].PriceValue)
	assert.Equal(t, "32000", items[0].PriceValue.String())

	assert.False(t, items[1].InStock)
	assert.Equal(t, []string{"CAT_TOWER"}, items[1].Categories)
	assert.Nil(t, items[1].PriceValue)
	assert.Equal(t, "가격문의", items[1].Price)
}

func TestPrintItemsJSON_EmptyFields(t *testing.T) {
	var buf bytes.Buffer
	err := display.PrintItemsJSON(&buf, []api.Item{{}})
	require.NoError(t, err)

	var items []display.ItemJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "", items[0].ID)
	assert.NotNil(t, items[0].Categories)
	assert.NotNil(t, items[0].Labels)
}

func TestPrintItemsJSON_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.PrintItemsJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrintItemDetail(t *testing.T) {
	item := sampleItems()[0]
	item.CreatedAt = "2024-03-01"
	item.ImageURL = "https://cdn.example.com/101.png"

	var buf bytes.Buffer
	display.PrintItemDetail(&buf, item)
	output := buf.String()

	assert.Contains(t, output, "ID 101")
	assert.Contains(t, output, "Added 2024-03-01")
	assert.Contains(t, output, "https://cdn.example.com/101.png")
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		input api.Scalar
		want  string
	}{
		{num("32000"), "32,000원"},
		{num("1,234,567"), "1,234,567원"},
		{num("999"), "999원"},
		{num("1000.5"), "1,000.5원"},
		{num("-4500"), "-4,500원"},
		{num("-0.5"), "-0.5원"},
		{num("0"), "0원"},
		{num("12345678901234567890.25"), "12,345,678,901,234,567,890.25원"},
		{num("무료"), "무료"},
		{api.Scalar{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, display.FormatPrice(tt.input), "FormatPrice(%q)", tt.input.String())
	}
}

func TestPrintCategoryOptions(t *testing.T) {
	var buf bytes.Buffer
	display.PrintCategoryOptions(&buf, catalog.Options())
	output := buf.String()

	assert.Contains(t, output, catalog.GroupPet)
	assert.Contains(t, output, catalog.GroupSpecial)
	assert.Contains(t, output, "DOG")
	assert.Contains(t, output, "강아지")
	assert.Contains(t, output, "best seller")
}

func TestPrintCategoryOptionsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.PrintCategoryOptionsJSON(&buf, catalog.OptionsByGroup(catalog.GroupPet)))

	var out []catalog.CategoryOption
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.NotEmpty(t, out)
	assert.Equal(t, "DOG", out[0].Value)

	buf.Reset()
	require.NoError(t, display.PrintCategoryOptionsJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrintCategoryCounts(t *testing.T) {
	cats := map[string]int{"DOG": 10, "SNACK": 5, "CUSTOM_TAG": 3}
	var buf bytes.Buffer
	display.PrintCategoryCounts(&buf, cats)
	output := buf.String()

	assert.Contains(t, output, "DOG (강아지): 10 items")
	assert.Contains(t, output, "SNACK (간식): 5 items")
	assert.Contains(t, output, "CUSTOM_TAG: 3 items")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("DOG")), bytes.Index(buf.Bytes(), []byte("SNACK")))
}

func TestPrintCategoryCountsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.PrintCategoryCountsJSON(&buf, map[string]int{"DOG": 10}))
	assert.NotContains(t, buf.String(), "\n  ")

	var out map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 10, out["DOG"])
}

func TestPrintNormalized(t *testing.T) {
	results := []display.Normalized{
		{Input: "멍멍이", Canonical: "DOG", Known: true, Label: "강아지"},
		{Input: "mystery", Canonical: "MYSTERY", Known: false, Label: "MYSTERY"},
	}
	var buf bytes.Buffer
	display.PrintNormalized(&buf, results)
	output := buf.String()

	assert.Contains(t, output, "멍멍이")
	assert.Contains(t, output, "DOG")
	assert.Contains(t, output, "MYSTERY")
	assert.Contains(t, output, "(unknown)")

	buf.Reset()
	require.NoError(t, display.PrintNormalizedJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrintPetType(t *testing.T) {
	pt := survey.Determine(survey.Answers{
		survey.QuestionActivity:    "very_active",
		survey.QuestionPersonality: "friendly",
		survey.QuestionSociability: "very_social",
	})

	var buf bytes.Buffer
	display.PrintPetType(&buf, pt)
	output := buf.String()

	assert.Contains(t, output, pt.Title)
	assert.Contains(t, output, "[EFSP]")
	assert.Contains(t, output, "ACTIVE_PLAY")
	for _, a := range pt.Activities {
		assert.Contains(t, output, a)
	}

	buf.Reset()
	require.NoError(t, display.PrintPetTypeJSON(&buf, pt))
	var out survey.PetType
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, pt, out)
}

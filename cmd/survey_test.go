package cmd

import (
	"testing"

	"github.com/petnolja/petcli/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shopItem(id, name, price, stock string, cats ...string) api.Item {
	return api.Item{
		ID:         api.NewScalar(id),
		Name:       name,
		SellStatus: api.SellStatusOnSale,
		Stock:      api.NewScalar(stock),
		Price:      api.NewScalar(price),
		Categories: cats,
	}
}

func TestRankTags_MergesAliasesOfOneTag(t *testing.T) {
	items := []api.Item{
		shopItem("1", "Tug Rope", "9000", "3", "tug toy"),
		shopItem("2", "Cushion", "30000", "1", "방석"),
		shopItem("3", "Pet House", "45000", "2", "하우스"),
		shopItem("4", "Crate", "52000", "1", "carrier"),
	}

	got := rankTags(items, []string{"터그놀이", "active play", "방석", "하우스", "carrier"}, 3)

	require.Len(t, got, 3)
	assert.Equal(t, shopMatch{Rank: 1, Tag: "방석", Canonical: "LIVING", Matched: 2, TopItem: "Cushion", TopPrice: "30,000원"}, got[0])
	assert.Equal(t, "터그놀이", got[1].Tag)
	assert.Equal(t, "ACTIVE_PLAY", got[1].Canonical)
	assert.Equal(t, "carrier", got[2].Tag)
	assert.Equal(t, 3, got[2].Rank)
}

func TestRankTags_ExcludesSoldOutAndEmptyStock(t *testing.T) {
	soldOut := shopItem("1", "Old Jerky", "5000", "4", "간식")
	soldOut.SellStatus = api.SellStatusSoldOut
	items := []api.Item{
		soldOut,
		shopItem("2", "Empty Jerky", "6000", "0", "간식"),
		shopItem("3", "Brush", "7000", "2", "grooming"),
	}

	got := rankTags(items, []string{"간식", "grooming"}, 0)

	require.Len(t, got, 2)
	assert.Equal(t, "GROOMING", got[0].Canonical)
	assert.Equal(t, 1, got[0].Matched)
	assert.Equal(t, "SNACK", got[1].Canonical)
	assert.Zero(t, got[1].Matched)
	assert.Empty(t, got[1].TopItem)
}

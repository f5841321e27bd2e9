package catalog

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/example/shoe-catalog/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func sampleProducts() []product.Product {
	return []product.Product{
		{ID: 1, Name: "Nike Air Max 270", Brand: "Nike", Price: 150},
		{ID: 2, Name: "Adidas Ultraboost", Brand: "Adidas", Price: 180},
		{ID: 3, Name: "Converse Chuck Taylor", Brand: "Converse", Price: 65},
	}
}

func ids(products []product.Product) []uint {
	out := make([]uint, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterAndSort_Examples(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []uint
	}{
		{
			name:  "all brands by price ascending",
			query: Query{Search: "", Brand: AllBrands, Sort: SortByPriceLow},
			want:  []uint{3, 1, 2},
		},
		{
			name:  "case-insensitive search",
			query: Query{Search: "nike", Brand: AllBrands, Sort: SortByName},
			want:  []uint{1},
		},
		{
			name:  "brand filter",
			query: Query{Search: "", Brand: "Adidas", Sort: SortByName},
			want:  []uint{2},
		},
		{
			name:  "no match",
			query: Query{Search: "xyz", Brand: AllBrands, Sort: SortByName},
			want:  []uint{},
		},
		{
			name:  "all brands by price descending",
			query: Query{Brand: AllBrands, Sort: SortByPriceHigh},
			want:  []uint{2, 1, 3},
		},
		{
			name:  "all brands by name",
			query: Query{Brand: AllBrands, Sort: SortByName},
			want:  []uint{2, 3, 1},
		},
		{
			name:  "unknown sort falls back to name",
			query: Query{Brand: AllBrands, Sort: "rating"},
			want:  []uint{2, 3, 1},
		},
		{
			name:  "brand comparison is case-sensitive",
			query: Query{Brand: "adidas", Sort: SortByName},
			want:  []uint{},
		},
		{
			name:  "search and brand combined",
			query: Query{Search: "CHUCK", Brand: "Converse", Sort: SortByName},
			want:  []uint{3},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterAndSort(sampleProducts(), tc.query)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestFilterAndSort_EmptyInput(t *testing.T) {
	for _, q := range []Query{
		{Brand: AllBrands, Sort: SortByName},
		{Search: "nike", Brand: "Nike", Sort: SortByPriceHigh},
	} {
		got := FilterAndSort(nil, q)
		require.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	input := sampleProducts()
	before := slices.Clone(input)

	_ = FilterAndSort(input, Query{Brand: AllBrands, Sort: SortByPriceLow})

	assert.Equal(t, before, input)
}

func TestFilterAndSort_StableOnEqualKeys(t *testing.T) {
	input := []product.Product{
		{ID: 10, Name: "Vans Era", Brand: "Vans", Price: 60},
		{ID: 11, Name: "Puma Suede", Brand: "Puma", Price: 70},
		{ID: 12, Name: "Vans Authentic", Brand: "Vans", Price: 60},
		{ID: 13, Name: "Vans Era", Brand: "Vans", Price: 55},
		{ID: 14, Name: "Converse One Star", Brand: "Converse", Price: 60},
	}

	t.Run("price ascending", func(t *testing.T) {
		got := FilterAndSort(input, Query{Brand: AllBrands, Sort: SortByPriceLow})
		assert.Equal(t, []uint{13, 10, 12, 14, 11}, ids(got))
	})

	t.Run("price descending", func(t *testing.T) {
		got := FilterAndSort(input, Query{Brand: AllBrands, Sort: SortByPriceHigh})
		assert.Equal(t, []uint{11, 10, 12, 14, 13}, ids(got))
	})

	t.Run("name", func(t *testing.T) {
		got := FilterAndSort(input, Query{Brand: AllBrands, Sort: SortByName})
		assert.Equal(t, []uint{14, 11, 12, 10, 13}, ids(got))
	})
}

func TestFilterAndSort_StableOnEqualNames(t *testing.T) {
	input := []product.Product{
		{ID: 21, Name: "Vans Era", Brand: "Vans", Price: 70},
		{ID: 22, Name: "Puma Suede", Brand: "Puma", Price: 80},
		{ID: 23, Name: "Vans Authentic", Brand: "Vans", Price: 50},
		{ID: 24, Name: "Vans Era", Brand: "Vans", Price: 60},
	}

	tests := []struct {
		name string
		sort SortKey
	}{
		{"name", SortByName},
		{"unrecognized key", "newest"},
		{"empty key", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterAndSort(input, Query{Brand: AllBrands, Sort: tc.sort})
			assert.Equal(t, []uint{22, 23, 21, 24}, ids(got))
		})
	}
}

func TestFilterAndSort_LocaleAwareNames(t *testing.T) {
	input := []product.Product{
		{ID: 1, Name: "zoom fly", Brand: "Nike"},
		{ID: 2, Name: "Éclair Runner", Brand: "Le Coq"},
		{ID: 3, Name: "Air Force 1", Brand: "Nike"},
		{ID: 4, Name: "ebony slip-on", Brand: "Vans"},
	}

	got := FilterAndSort(input, Query{Brand: AllBrands, Sort: SortByName})

	// Byte-wise ordering would put lowercase and accented names last.
	assert.Equal(t, []uint{3, 4, 2, 1}, ids(got))
}

func TestFilterAndSort_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	brands := []string{"Nike", "Adidas", "Converse", "Vans", "Puma"}
	words := []string{"Air", "Max", "Boost", "Chuck", "Old", "Skool", "Runner", "Low"}
	searches := []string{"", "a", "AIR", "skool", "max 1", "zzz"}
	sorts := []SortKey{SortByName, SortByPriceLow, SortByPriceHigh, "bogus"}

	for round := 0; round < 50; round++ {
		n := rng.IntN(25)
		input := make([]product.Product, n)
		for i := range input {
			brand := brands[rng.IntN(len(brands))]
			input[i] = product.Product{
				ID:    uint(i + 1),
				Name:  fmt.Sprintf("%s %s %d", brand, words[rng.IntN(len(words))], rng.IntN(3)),
				Brand: brand,
				Price: float64(50 + 10*rng.IntN(6)),
			}
		}

		brandSel := AllBrands
		if rng.IntN(2) == 0 {
			brandSel = brands[rng.IntN(len(brands))]
		}
		q := Query{
			Search: searches[rng.IntN(len(searches))],
			Brand:  brandSel,
			Sort:   sorts[rng.IntN(len(sorts))],
		}

		got := FilterAndSort(input, q)

		// Every result comes from the input and satisfies the filters.
		positions := make(map[uint]int, len(input))
		for i, p := range input {
			positions[p.ID] = i
		}
		for _, p := range got {
			idx, ok := positions[p.ID]
			require.True(t, ok, "result contains product %d not in input", p.ID)
			assert.Equal(t, input[idx], p)
			assert.True(t, q.Matches(p), "product %q does not match %+v", p.Name, q)
		}

		// Nothing matching is dropped.
		matching := 0
		for _, p := range input {
			if q.Matches(p) {
				matching++
			}
		}
		assert.Len(t, got, matching)

		// Idempotent.
		assert.Equal(t, got, FilterAndSort(got, q))

		// Every sort key keeps input order on ties.
		col := collate.New(language.English)
		for i := 1; i < len(got); i++ {
			var tied bool
			switch q.Sort {
			case SortByPriceLow, SortByPriceHigh:
				tied = got[i-1].Price == got[i].Price
			default:
				tied = col.CompareString(got[i-1].Name, got[i].Name) == 0
			}
			if tied {
				assert.Less(t, positions[got[i-1].ID], positions[got[i].ID],
					"sort %q reordered ties %d and %d", q.Sort, got[i-1].ID, got[i].ID)
			}
		}
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
	}{
		{"name", SortByName},
		{"price-low", SortByPriceLow},
		{"price-high", SortByPriceHigh},
		{"", SortByName},
		{"PRICE-LOW", SortByName},
		{"newest", SortByName},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseSortKey(tc.in))
		})
	}
}

func TestNewQuery(t *testing.T) {
	q := NewQuery("air", "", "price-high")
	assert.Equal(t, Query{Search: "air", Brand: AllBrands, Sort: SortByPriceHigh}, q)

	q = NewQuery("", "Vans", "whatever")
	assert.Equal(t, Query{Brand: "Vans", Sort: SortByName}, q)
}

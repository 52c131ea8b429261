package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 1, ParsePage("-3"))
	assert.Equal(t, 7, ParsePage("7"))
}

func TestPaginate(t *testing.T) {
	db := setupDB(t)
	seller := createSeller(t, db, "seller", "Moscow")
	createManyProducts(t, db, seller, 30) // 3 pages: 12 + 12 + 6

	t.Run("first page is full", func(t *testing.T) {
		products, meta, err := Paginate(ProductFilter{}.Apply(db), 1)
		require.NoError(t, err)
		assert.Len(t, products, PageSize)
		assert.Equal(t, 1, meta.CurrentPage)
		assert.Equal(t, 3, meta.TotalPages)
		assert.Equal(t, int64(30), meta.Total)
		assert.True(t, meta.HasNext)
		assert.False(t, meta.HasPrevious)
	})

	t.Run("last page is partial", func(t *testing.T) {
		products, meta, err := Paginate(ProductFilter{}.Apply(db), 3)
		require.NoError(t, err)
		assert.Len(t, products, 6)
		assert.Equal(t, 3, meta.CurrentPage)
		assert.False(t, meta.HasNext)
	})

	t.Run("page zero and negative clamp to first", func(t *testing.T) {
		first, _, err := Paginate(ProductFilter{}.Apply(db), 1)
		require.NoError(t, err)

		for _, page := range []int{0, -5} {
			products, meta, err := Paginate(ProductFilter{}.Apply(db), page)
			require.NoError(t, err)
			assert.Equal(t, 1, meta.CurrentPage)
			require.Len(t, products, len(first))
			assert.Equal(t, first[0].ID, products[0].ID)
		}
	})

	t.Run("page beyond last clamps to last", func(t *testing.T) {
		products, meta, err := Paginate(ProductFilter{}.Apply(db), 99)
		require.NoError(t, err)
		assert.Equal(t, 3, meta.CurrentPage)
		assert.Len(t, products, 6)
	})

	t.Run("no pages never errors", func(t *testing.T) {
		empty := setupDB(t)
		products, meta, err := Paginate(ProductFilter{}.Apply(empty), 5)
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.Equal(t, 1, meta.CurrentPage)
		assert.Equal(t, 1, meta.TotalPages)
	})

	t.Run("pages do not overlap", func(t *testing.T) {
		seen := map[uint]bool{}
		for page := 1; page <= 3; page++ {
			products, _, err := Paginate(ProductFilter{}.Apply(db), page)
			require.NoError(t, err)
			for _, p := range products {
				assert.False(t, seen[p.ID], "product %d appeared twice", p.ID)
				seen[p.ID] = true
			}
		}
		assert.Len(t, seen, 30)
	})
}

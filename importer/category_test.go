package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryPath(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{
			"numeric prefix and root stripped",
			"100358 - Women Clothes/Pants & Leggings/Pants",
			[]string{"Pants & Leggings", "Pants"},
		},
		{
			"no prefix",
			"Women Clothes/Đồ bộ nữ",
			[]string{"Đồ bộ nữ"},
		},
		{
			"root only",
			"Women Clothes",
			nil,
		},
		{
			"root not first segment is kept",
			"Đồ bộ nữ/Women Clothes",
			[]string{"Đồ bộ nữ", "Women Clothes"},
		},
		{
			"empty segments dropped",
			"Áo nữ//Áo thun/",
			[]string{"Áo nữ", "Áo thun"},
		},
		{
			"blank",
			"   ",
			nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseCategoryPath(tc.raw, "Women Clothes"))
		})
	}
}

func newTestNormalizer(store CatalogStore) *CategoryNormalizer {
	return NewCategoryNormalizer(store, noopTranslator{}, gecho.NewDefaultLogger(), "Women Clothes", "Uncategorized")
}

func TestCategoryNormalizerCreatesChain(t *testing.T) {
	store := newMemoryStore()
	cn := newTestNormalizer(store)

	leaf, err := cn.Resolve(context.Background(), "2 - Women Clothes/Áo nữ/Áo thun nữ")
	require.NoError(t, err)
	require.NotNil(t, leaf)

	require.Len(t, store.categories, 2)
	root := store.categories[0]
	child := store.categories[1]

	assert.Equal(t, "Áo nữ", root.Name)
	assert.Equal(t, "ao-nu", root.Slug)
	assert.Nil(t, root.ParentID)

	assert.Equal(t, "ao-thun-nu", child.Slug)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
	assert.Equal(t, child.ID, *leaf)

	assert.Equal(t, 2, cn.Created())
}

func TestCategoryNormalizerReusesExistingNodes(t *testing.T) {
	store := newMemoryStore()
	cn := newTestNormalizer(store)

	first, err := cn.Resolve(context.Background(), "Áo nữ/Áo thun nữ")
	require.NoError(t, err)

	// Different raw spelling, same slug chain.
	second, err := cn.Resolve(context.Background(), "ÁO NỮ/Áo thun nữ")
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	assert.Len(t, store.categories, 2)
	assert.Equal(t, 2, cn.Created())
}

func TestCategoryNormalizerFallback(t *testing.T) {
	store := newMemoryStore()
	cn := newTestNormalizer(store)

	leaf, err := cn.Resolve(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, leaf)

	require.Len(t, store.categories, 1)
	assert.Equal(t, "Uncategorized", store.categories[0].Name)
}

type failingTranslator struct{}

func (failingTranslator) Translate(context.Context, string) (string, error) {
	return "", errors.New("service unavailable")
}

func TestCategoryNormalizerTranslationFailureKeepsOriginal(t *testing.T) {
	store := newMemoryStore()
	cn := NewCategoryNormalizer(store, failingTranslator{}, gecho.NewDefaultLogger(), "Women Clothes", "Uncategorized")

	leaf, err := cn.Resolve(context.Background(), "Đồ bộ nữ")
	require.NoError(t, err)
	require.NotNil(t, leaf)

	require.Len(t, store.categories, 1)
	assert.Equal(t, "Đồ bộ nữ", store.categories[0].Name)
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func TestNormalizeProductChannelPost(t *testing.T) {
	post := models.RawPost{
		Text:         "#Jackets #Nike\nWinter Jacket\nЦена: 4 990 ₽\nРазмеры: S, M, L",
		PhotoFileID:  "photo-abc",
		SourceChatID: int64p(-100123),
		SourceMsgID:  int64p(42),
	}

	p := NormalizeProduct(post)

	assert.Equal(t, "Jackets", p.Category)
	assert.Equal(t, "Nike", p.Brand)
	assert.Equal(t, "Winter Jacket", p.Title)
	assert.Equal(t, int64(499000), p.Price)
	require.NotNil(t, p.Sizes)
	assert.Equal(t, "S, M, L", *p.Sizes)
	require.NotNil(t, p.PhotoFileID)
	assert.Equal(t, "photo-abc", *p.PhotoFileID)
	require.NotNil(t, p.Description)
	assert.Equal(t, post.Text, *p.Description)
	assert.Equal(t, int64(-100123), *p.SourceChatID)
	assert.Equal(t, int64(42), *p.SourceMsgID)
}

func TestNormalizeProductDefaults(t *testing.T) {
	p := NormalizeProduct(models.RawPost{})

	assert.Equal(t, models.DefaultCategory, p.Category)
	assert.Equal(t, models.DefaultBrand, p.Brand)
	assert.Equal(t, models.DefaultTitle, p.Title)
	assert.Equal(t, int64(0), p.Price)
	assert.Nil(t, p.Sizes)
	assert.Nil(t, p.PhotoFileID)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.SourceChatID)
	assert.Nil(t, p.SourceMsgID)
}

func TestNormalizeProductSingleTag(t *testing.T) {
	p := NormalizeProduct(models.RawPost{Text: "#Shoes\nRunning shoes\n2500 руб"})

	assert.Equal(t, "Shoes", p.Category)
	assert.Equal(t, models.DefaultBrand, p.Brand)
	assert.Equal(t, int64(250000), p.Price)
}

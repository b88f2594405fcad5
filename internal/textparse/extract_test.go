package textparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
		ok   bool
	}{
		{"labeled with currency sign", "Цена: 4 990 ₽", 499000, true},
		{"labeled with rub word", "цена 4990 руб", 499000, true},
		{"bare amount with sign", "Winter Jacket\n250₽", 25000, true},
		{"bare amount with short r", "5 990р", 599000, true},
		{"rub with trailing dot", "1200 руб.", 120000, true},
		{"latin rub token", "Price: 700 rub", 70000, true},
		{"dot as thousands separator", "Цена: 5.990 ₽", 599000, true},
		{"nbsp grouping", "Цена: 4 990 ₽", 499000, true},
		{"single digit amount", "5 ₽", 500, true},
		{"standalone number line", "Jacket\n4990\ncool stuff", 499000, true},
		{"no price at all", "just a description", 0, false},
		{"empty input", "", 0, false},
		{"digits inside a word", "арт1000р в наличии", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPrice(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPricePatternPriority(t *testing.T) {
	// A currency-marked amount later in the text wins over an earlier
	// standalone number line.
	got, ok := ExtractPrice("123\nспецпредложение 456 руб")
	assert.True(t, ok)
	assert.Equal(t, int64(45600), got)
}

func TestExtractSizes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"labeled cyrillic", "Размеры: S, M, L", "S, M, L", true},
		{"labeled singular", "Размер: 42", "42", true},
		{"labeled english slashes", "sizes: 42/44/46", "42/44/46", true},
		{"dash delimiter", "Размеры - XS, S", "XS, S", true},
		{"whitespace collapsed", "Размеры: S,   M,  L", "S, M, L", true},
		{"standalone size line", "Куртка\nS / M / L\nтепло", "S / M / L", true},
		{"no sizes", "обычное описание товара", "", false},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSizes(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSizesCapped(t *testing.T) {
	long := "Размеры: " + strings.Repeat("XL, ", 60)
	got, ok := ExtractSizes(long)
	assert.True(t, ok)
	assert.LessOrEqual(t, len([]rune(got)), 120)
}

func TestExtractTags(t *testing.T) {
	assert.Equal(t, []string{"Shoes", "Shoes", "Nike"}, ExtractTags("#Shoes #Shoes #Nike"))
	assert.Equal(t, []string{"Куртки", "Nike"}, ExtractTags("#Куртки #Nike\nWinter Jacket"))
	assert.Empty(t, ExtractTags("no tags here"))
	assert.Empty(t, ExtractTags(""))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Winter Jacket", FirstLine("\n\nWinter Jacket\nЦена: 4990 ₽"))
	assert.Equal(t, "Winter Jacket", FirstLine("#Jackets #Nike\nWinter Jacket\nЦена: 4990 ₽"))
	assert.Equal(t, "#Jackets #Nike", FirstLine("#Jackets #Nike"))
	assert.Equal(t, "Item", FirstLine(""))
	assert.Equal(t, "Item", FirstLine("   \n  "))

	long := strings.Repeat("a", 300)
	assert.Len(t, FirstLine(long), 128)
}

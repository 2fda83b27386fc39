package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToText(t *testing.T) {
	assert.Nil(t, ToText(""))
	assert.Nil(t, ToText("   "))
	assert.Nil(t, ToText("\t\n"))

	got := ToText("  同期テスト顧客  ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "同期テスト顧客", *got)
	}
}

func TestTextOr(t *testing.T) {
	assert.Equal(t, "アクティブ", TextOr("", "アクティブ"))
	assert.Equal(t, "一時", TextOr(" 一時 ", "アクティブ"))
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 500000.0, ToFloat("500000", 0))
	assert.Equal(t, 1254440.0, ToFloat("1,254,440", 0))
	assert.Equal(t, 0.25, ToFloat("0.25", 0))
	assert.Equal(t, -1200.0, ToFloat("-1200", 0))

	// Any parse failure falls back to the default, never an error
	assert.Equal(t, 0.25, ToFloat("", 0.25))
	assert.Equal(t, 0.25, ToFloat("=SUM(G5:G20)", 0.25))
	assert.Equal(t, 0.0, ToFloat("未定", 0))
}

func TestToInt(t *testing.T) {
	if got := ToInt("42"); assert.NotNil(t, got) {
		assert.Equal(t, 42, *got)
	}
	// Excel stores numerics as floats
	if got := ToInt("42.0"); assert.NotNil(t, got) {
		assert.Equal(t, 42, *got)
	}
	assert.Nil(t, ToInt(""))
	assert.Nil(t, ToInt("abc"))
	assert.Nil(t, ToInt("42.5"))
}

func TestToDate(t *testing.T) {
	assert.Nil(t, ToDate(""))
	assert.Nil(t, ToDate("not a date"))

	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if got := ToDate("2025-06-01"); assert.NotNil(t, got) {
		assert.Equal(t, want, *got)
	}
	if got := ToDate("2025/06/01"); assert.NotNil(t, got) {
		assert.Equal(t, want, *got)
	}
	// Only the first ten characters are considered
	if got := ToDate("2025-06-01 10:30:00"); assert.NotNil(t, got) {
		assert.Equal(t, want, *got)
	}
	// Native dates arrive as excel serial numbers; 45809 is 2025-06-01
	if got := ToDate("45809"); assert.NotNil(t, got) {
		assert.Equal(t, want, *got)
	}

	// Numbers whose serial lands outside the plausible year window are
	// numeric text, not dates
	assert.Nil(t, ToDate("12"))
	assert.Nil(t, ToDate("1000000"))
}

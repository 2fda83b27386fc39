package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		prefix   string
		want     string
	}{
		{"empty set", nil, ProjectPrefix, "P-001"},
		{"gap is not reused", []string{"P-001", "P-003"}, ProjectPrefix, "P-004"},
		{"single digit suffix still matches", []string{"P-010", "P-2"}, ProjectPrefix, "P-011"},
		{"foreign prefix ignored", []string{"X-099", "P-001"}, ProjectPrefix, "P-002"},
		{"whitespace tolerated", []string{" P-007 "}, ProjectPrefix, "P-008"},
		{"invoice sequence", []string{"INV-001", "INV-012"}, InvoicePrefix, "INV-013"},
		{"payment sequence", []string{}, PaymentPrefix, "PAY-001"},
		{"partial match rejected", []string{"P-001x", "xP-002"}, ProjectPrefix, "P-001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.existing, tt.prefix))
		})
	}
}

func TestNextIDIdempotentWithoutInsert(t *testing.T) {
	existing := []string{"P-001", "P-005"}
	first := NextID(existing, ProjectPrefix)
	second := NextID(existing, ProjectPrefix)
	assert.Equal(t, first, second)
	assert.Equal(t, "P-006", first)
}

func TestRowID(t *testing.T) {
	assert.Equal(t, "INV-001", RowID(InvoicePrefix, 1))
	assert.Equal(t, "PAY-042", RowID(PaymentPrefix, 42))
	assert.Equal(t, "INV-1000", RowID(InvoicePrefix, 1000))
}

// Package idgen allocates business keys in prefixed, zero-padded numeric
// sequences (P-001, INV-002, PAY-003, ...).
//
// Two strategies exist and are deliberately kept apart:
//
//   - NextID derives the next key from the maximum of the keys already
//     persisted, so it is monotonic even when earlier numbers were deleted
//     and idempotent when called twice without an intervening insert.
//   - RowID synthesizes a key from a sheet row position, for source cells
//     whose displayed value is a stale formula artifact. Row position is
//     stable run to run within a sheet, which keeps re-syncs idempotent.
package idgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	ProjectPrefix = "P"
	InvoicePrefix = "INV"
	PaymentPrefix = "PAY"
)

func pattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `-(\d+)$`)
}

// NextID returns prefix-<max+1> zero-padded to three digits, where max is the
// largest numeric suffix among existing keys matching prefix-<digits> exactly.
// Non-matching keys are ignored; an empty set yields prefix-001.
func NextID(existing []string, prefix string) string {
	re := pattern(prefix)
	maxNum := 0
	for _, raw := range existing {
		m := re.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxNum {
			maxNum = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, maxNum+1)
}

// RowID synthesizes prefix-<offset> zero-padded to three digits from a
// 1-based data-row offset.
func RowID(prefix string, rowOffset int) string {
	return fmt.Sprintf("%s-%03d", prefix, rowOffset)
}

package accounting

import "fmt"

// Account numbers are human readable and sequential: roots are "EXP-001",
// "EXP-002", ...; siblings append a per-parent two-digit suffix, "EXP-001-01".
// The numeric part comes from a database sequence so concurrent creations
// never collide.

const rootNumberPrefix = "EXP"

// FormatAccountNumber renders a root account number from its sequence value.
func FormatAccountNumber(seq int64) string {
	return fmt.Sprintf("%s-%03d", rootNumberPrefix, seq)
}

// FormatSiblingNumber renders a sibling account number from the parent's
// number and the sibling's 1-based sequence within that parent.
func FormatSiblingNumber(parentNumber string, siblingSeq int) string {
	return fmt.Sprintf("%s-%02d", parentNumber, siblingSeq)
}

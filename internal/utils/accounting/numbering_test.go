package accounting_test

import (
	"testing"

	"github.com/bizsuite/expense_ledger_app/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
)

func TestFormatAccountNumber(t *testing.T) {
	assert.Equal(t, "EXP-001", accounting.FormatAccountNumber(1))
	assert.Equal(t, "EXP-042", accounting.FormatAccountNumber(42))
	assert.Equal(t, "EXP-1000", accounting.FormatAccountNumber(1000)) // padding widens past 999
}

func TestFormatSiblingNumber(t *testing.T) {
	assert.Equal(t, "EXP-001-01", accounting.FormatSiblingNumber("EXP-001", 1))
	assert.Equal(t, "EXP-007-12", accounting.FormatSiblingNumber("EXP-007", 12))
}

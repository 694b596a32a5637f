package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Reference prefixes for the sequences managed by the reference allocator.
const (
	JournalReferencePrefix     = "JE"
	TransactionReferencePrefix = "TXN"
)

// ReferenceWidth is the zero-padded width of the numeric suffix.
// The <PREFIX>-<zero-padded-number> format is externally visible (display, search)
// and must remain stable.
const ReferenceWidth = 6

// FormatReference renders a sequence number as a display reference, e.g. ("JE", 123) -> "JE-000123".
// Numbers wider than ReferenceWidth are not truncated.
func FormatReference(prefix string, n int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, ReferenceWidth, n)
}

// ReferenceNumber extracts the numeric suffix from a reference string.
func ReferenceNumber(reference string) (int64, error) {
	idx := strings.LastIndex(reference, "-")
	if idx < 0 || idx == len(reference)-1 {
		return 0, fmt.Errorf("malformed reference %q", reference)
	}
	n, err := strconv.ParseInt(reference[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed reference %q: %w", reference, err)
	}
	return n, nil
}

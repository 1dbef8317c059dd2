package service

import (
	"fmt"
	"strconv"
	"strings"
)

const invoiceNumberPrefix = "INV-"

// NextInvoiceNumber assigns the next sequential invoice number.
//
// It scans every existing number carrying the INV- prefix, parses the numeric
// suffix (non-matching or unparsable entries count as 0), takes the maximum
// and adds 1. The result is zero-padded to 3 digits, so numbers grow
// INV-001 … INV-999, INV-1000, … Gaps left by deleted invoices below the
// surviving maximum are never refilled.
func NextInvoiceNumber(existing []string) string {
	max := 0
	for _, n := range existing {
		if !strings.HasPrefix(n, invoiceNumberPrefix) {
			continue
		}
		v, err := strconv.Atoi(strings.TrimPrefix(n, invoiceNumberPrefix))
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return fmt.Sprintf("%s%03d", invoiceNumberPrefix, max+1)
}

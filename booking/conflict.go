package booking

// =============================================================================
// CONFLICT CHECK - No double-booking of an article
// =============================================================================

// HasConflict reports whether the candidate range overlaps any confirmed
// rental for the given article. Pure scan over the ledger, O(n); ledgers
// here are small (one site, one ledger file).
//
// The overlap rule is inclusive on both boundaries (see DateRange.Overlaps):
// a request starting on the day an existing rental ends is a conflict.
func HasConflict(productID string, r DateRange, ledger []ConfirmedRental) bool {
	_, found := FindConflict(productID, r, ledger)
	return found
}

// FindConflict returns the first confirmed rental that blocks the candidate
// range. Which entry is "first" is not meaningful beyond error reporting;
// callers that only need a verdict should use HasConflict.
func FindConflict(productID string, r DateRange, ledger []ConfirmedRental) (ConfirmedRental, bool) {
	for _, entry := range ledger {
		if entry.ProductID != productID {
			continue
		}
		if r.Overlaps(entry.Range()) {
			return entry, true
		}
	}
	return ConfirmedRental{}, false
}

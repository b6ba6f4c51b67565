/*
cleanup.go - Confirmed-rentals ledger deduplication

PURPOSE:
  The approval workflow appends a ledger entry on EVERY approval call, with
  no re-approval guard (see workflow.go). Admin retries and double-clicks
  therefore leave duplicates behind. CleanupLedger is the idempotent
  maintenance pass that collapses them.

ALGORITHM:
  Entries are grouped by (productId, startDate, endDate, customerEmail).
  Within a group, the entry with the strictly latest CreatedAt wins; on a
  tie the first-encountered entry is kept. Output preserves first-seen
  group order.

IDEMPOTENCY:
  Running cleanup twice in a row removes nothing the second time, and the
  cleaned ledger is never larger than the input.

SEE ALSO:
  - workflow.go: RunCleanup persists the result
  - jobs/: scheduled nightly execution
*/
package booking

// CleanupResult summarizes a cleanup pass.
type CleanupResult struct {
	Original int `json:"original"`
	Cleaned  int `json:"cleaned"`
	Removed  int `json:"removed"`
}

// dedupeKey identifies "the same reservation" across duplicate entries.
// Dates are keyed by their day string so two entries for the same day always
// collide regardless of how the timestamps were stored.
type dedupeKey struct {
	ProductID string
	Start     string
	End       string
	Email     string
}

// CleanupLedger deduplicates the ledger. Pure function: it does not consult
// the request store and does not persist anything.
func CleanupLedger(entries []ConfirmedRental) ([]ConfirmedRental, CleanupResult) {
	unique := make(map[dedupeKey]ConfirmedRental, len(entries))
	var order []dedupeKey

	for _, entry := range entries {
		k := dedupeKey{
			ProductID: entry.ProductID,
			Start:     entry.StartDate.String(),
			End:       entry.EndDate.String(),
			Email:     entry.CustomerEmail,
		}

		existing, seen := unique[k]
		if !seen {
			unique[k] = entry
			order = append(order, k)
			continue
		}
		// Strictly newer replaces; equal timestamps keep the earlier entry.
		if entry.CreatedAt.After(existing.CreatedAt) {
			unique[k] = entry
		}
	}

	cleaned := make([]ConfirmedRental, 0, len(order))
	for _, k := range order {
		cleaned = append(cleaned, unique[k])
	}

	return cleaned, CleanupResult{
		Original: len(entries),
		Cleaned:  len(cleaned),
		Removed:  len(entries) - len(cleaned),
	}
}

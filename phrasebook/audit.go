package phrasebook

// AuditResult describes how well a table round-trips through its reverse
// table. Tables for the two directions are authored independently, so some
// asymmetry is normal; the audit only reports it.
type AuditResult struct {
	// Forward is the pair that was audited.
	Forward Pair

	// Consistent holds entries whose translation maps back to the same phrase.
	Consistent []Entry

	// Missing holds entries whose translation is not a phrase of the reverse
	// table at all.
	Missing []Entry

	// Mismatched holds entries whose translation maps back to a different
	// phrase.
	Mismatched []Mismatch
}

// Mismatch is a forward entry whose reverse lookup lands on another phrase.
type Mismatch struct {
	Entry
	// RoundTrip is what the reverse table gives for Entry.Translation.
	RoundTrip string
}

// AuditStats contains summary counts for an AuditResult.
type AuditStats struct {
	Consistent int
	Missing    int
	Mismatched int
}

// Stats returns summary counts for the audit.
func (r *AuditResult) Stats() AuditStats {
	return AuditStats{
		Consistent: len(r.Consistent),
		Missing:    len(r.Missing),
		Mismatched: len(r.Mismatched),
	}
}

// HasAsymmetry returns true if any entry failed to round-trip.
func (r *AuditResult) HasAsymmetry() bool {
	return len(r.Missing) > 0 || len(r.Mismatched) > 0
}

// AuditPair checks every entry of forward against reverse.
func AuditPair(forward, reverse *Table) *AuditResult {
	result := &AuditResult{Forward: forward.pair}

	for _, e := range forward.entries {
		back, ok := reverse.Lookup(e.Translation)
		switch {
		case !ok:
			result.Missing = append(result.Missing, e)
		case back != e.Phrase:
			result.Mismatched = append(result.Mismatched, Mismatch{Entry: e, RoundTrip: back})
		default:
			result.Consistent = append(result.Consistent, e)
		}
	}

	return result
}

// Audit runs AuditPair for every table whose reverse direction also has a
// table. Results are ordered by pair name.
func (s *Store) Audit() []*AuditResult {
	var results []*AuditResult
	for _, p := range s.Pairs() {
		reverse, ok := s.tables[p.Reverse()]
		if !ok {
			continue
		}
		results = append(results, AuditPair(s.tables[p], reverse))
	}
	return results
}

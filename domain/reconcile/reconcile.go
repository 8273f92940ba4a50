package reconcile

import (
	"fmt"
	"strings"

	"sheetdesk/domain/core"
	"sheetdesk/domain/table"
)

// IdentityPolicy selects how a row's identity is derived during a merge.
// The two policies are not equivalent: they diverge on duplicate detection
// and on rows with a null identity column.
type IdentityPolicy string

const (
	// PolicyFirstColumnKey identifies a row by the value in the first
	// header column. Rows with a null key are dropped from consideration.
	PolicyFirstColumnKey IdentityPolicy = "first_column_key"
	// PolicyContentHash identifies a row by a hash over all of its cell
	// values in header order, null coerced to empty.
	PolicyContentHash IdentityPolicy = "content_hash"
)

// ParsePolicy parses a configured policy name
func ParsePolicy(s string) (IdentityPolicy, error) {
	switch IdentityPolicy(strings.TrimSpace(strings.ToLower(s))) {
	case PolicyFirstColumnKey:
		return PolicyFirstColumnKey, nil
	case PolicyContentHash:
		return PolicyContentHash, nil
	}
	return "", fmt.Errorf("unknown identity policy: %q", s)
}

// Report classifies the rows touched by one merge. The keys are display
// strings for the operator's change audit, not stable identifiers.
type Report struct {
	UpdatedKeys []string `json:"updated_keys"`
	NewKeys     []string `json:"new_keys"`
}

// SchemaMismatchError is returned when the incoming table's headers differ
// from the stored table's in name or order. Both header lists are carried so
// the operator can decide whether to import as a new dataset instead.
type SchemaMismatchError struct {
	Existing []string
	Incoming []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%v: existing headers [%s], incoming headers [%s]",
		core.ErrSchemaMismatch,
		strings.Join(e.Existing, ", "),
		strings.Join(e.Incoming, ", "))
}

func (e *SchemaMismatchError) Unwrap() error {
	return core.ErrSchemaMismatch
}

// Result contains the merged table and the per-merge change report
type Result struct {
	Merged table.Table
	Report Report
}

// Merge reconciles an incoming table into an existing stored table assumed
// to represent the same logical entity set. Existing rows keep their
// relative order; duplicate existing identities collapse to their first
// occurrence; rows classified new are appended in incoming order. The merge
// is all-or-nothing: the precondition check runs before any row is touched,
// and the existing table is never mutated.
func Merge(existing, incoming table.Table, policy IdentityPolicy) (*Result, error) {
	if !existing.HeadersEqual(incoming) {
		return nil, &SchemaMismatchError{
			Existing: append([]string(nil), existing.Headers...),
			Incoming: append([]string(nil), incoming.Headers...),
		}
	}

	// Identity -> position in merged. Rows without a usable identity pass
	// through untouched.
	merged := make([]table.Row, 0, len(existing.Rows)+len(incoming.Rows))
	index := make(map[string]int, len(existing.Rows))
	for _, row := range existing.Rows {
		id, ok := rowIdentity(existing, row, policy)
		if !ok {
			merged = append(merged, row)
			continue
		}
		if _, dup := index[id]; dup {
			// stale duplicate; the first occurrence wins
			continue
		}
		index[id] = len(merged)
		merged = append(merged, row)
	}

	report := Report{UpdatedKeys: []string{}, NewKeys: []string{}}
	reported := make(map[string]bool)

	for _, row := range incoming.Rows {
		id, ok := rowIdentity(incoming, row, policy)
		if !ok {
			continue
		}
		if pos, exists := index[id]; exists {
			merged[pos] = row
			if !reported[id] {
				report.UpdatedKeys = append(report.UpdatedKeys, reportKey(id, policy))
				reported[id] = true
			}
		} else {
			merged = append(merged, row)
			index[id] = len(merged) - 1
			report.NewKeys = append(report.NewKeys, reportKey(id, policy))
			reported[id] = true
		}
	}

	return &Result{
		Merged: table.Table{Headers: append([]string(nil), incoming.Headers...), Rows: merged},
		Report: report,
	}, nil
}

// rowIdentity derives the identity string for a row under the given policy.
// Content-hash identities carry the full hash; truncation happens only in
// reportKey, so distinct rows never collapse on a shortened prefix. The
// second return is false when the row has no usable identity.
func rowIdentity(t table.Table, row table.Row, policy IdentityPolicy) (string, bool) {
	switch policy {
	case PolicyContentHash:
		values := t.RowValues(row)
		fields := make([]string, len(values))
		for i, v := range values {
			fields[i] = v.String()
		}
		return core.HashFields(fields).String(), true
	default: // PolicyFirstColumnKey
		if len(t.Headers) == 0 {
			return "", false
		}
		key := row[t.Headers[0]]
		if key.IsNull() {
			return "", false
		}
		return key.String(), true
	}
}

// reportKey renders an identity as an operator-facing report string. Content
// hashes are truncated for display only; the merge itself keys on the full
// hash.
func reportKey(id string, policy IdentityPolicy) string {
	if policy == PolicyContentHash {
		return core.Hash(id).Short()
	}
	return id
}

package catalog

import (
	"fmt"
)

// Severity grades a validation finding by how strongly it blocks catalog
// construction.
type Severity string

const (
	// SeverityAdvisory marks style or completeness findings. Never blocking.
	SeverityAdvisory Severity = "advisory"
	// SeverityError marks a localized schema inconsistency. Collected
	// alongside a best-effort artifact.
	SeverityError Severity = "error"
	// SeverityFatal marks findings that make the catalog itself invalid.
	// Construction fails closed instead of publishing a partial artifact.
	SeverityFatal Severity = "fatal"
)

// IssueKind identifies the class of a finding so consumers can render
// actionable messages instead of matching on strings.
type IssueKind string

const (
	KindDuplicateTable            IssueKind = "duplicate-table"
	KindDuplicateField            IssueKind = "duplicate-field"
	KindUnknownSummaryColumn      IssueKind = "unknown-summary-column"
	KindPrimaryKeyMismatch        IssueKind = "primary-key-mismatch"
	KindMultipleAutoIncrement     IssueKind = "multiple-auto-increment"
	KindInvalidReference          IssueKind = "invalid-reference"
	KindUniquePrimaryKey          IssueKind = "unique-primary-key"
	KindRequiredWithoutDefault    IssueKind = "required-without-default"
	KindMissingComment            IssueKind = "missing-comment"
	KindSummaryOmitsField         IssueKind = "summary-omits-field"
	KindSummaryTypeDrift          IssueKind = "summary-type-drift"
	KindUnmodeledReference        IssueKind = "unmodeled-reference"
	KindDanglingTableReference    IssueKind = "dangling-table-reference"
	KindUnresolvedColumnReference IssueKind = "unresolved-column-reference"
	KindNoPrimaryKeyToInfer       IssueKind = "no-primary-key-to-infer"
)

// Issue is one structured validation finding. Table, Field, Domain, and Ref
// carry the offending identifiers where they apply.
type Issue struct {
	Severity Severity  `json:"severity"`
	Kind     IssueKind `json:"kind"`
	Table    string    `json:"table,omitempty"`
	Field    string    `json:"field,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Ref      string    `json:"ref,omitempty"`
	Message  string    `json:"message"`
}

func (i Issue) String() string {
	switch {
	case i.Table != "" && i.Field != "":
		return fmt.Sprintf("%s: table %q field %q: %s", i.Severity, i.Table, i.Field, i.Message)
	case i.Table != "":
		return fmt.Sprintf("%s: table %q: %s", i.Severity, i.Table, i.Message)
	default:
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
}

// Issues is an ordered collection of findings, in catalog walk order.
type Issues []Issue

// Filter returns the findings at exactly the given severity.
func (is Issues) Filter(sev Severity) Issues {
	var out Issues
	for _, i := range is {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Count returns how many findings have the given severity.
func (is Issues) Count(sev Severity) int {
	n := 0
	for _, i := range is {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any finding is error severity or above.
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.Severity == SeverityError || i.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// DuplicateTableError is the fatal construction failure for a table declared
// by more than one domain set. FirstDomain is where the name was first seen.
type DuplicateTableError struct {
	TableName    string
	FirstDomain  string
	SecondDomain string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("duplicate table %q: declared in domain %q and again in domain %q",
		e.TableName, e.FirstDomain, e.SecondDomain)
}

package catalog

import (
	"fmt"
)

// ValidateTable checks one table's internal consistency, in particular that
// the denormalized columns summary is a faithful projection of the fields
// list. It never mutates the table; it only reports.
//
// Error findings mean the definition is inconsistent with itself. Advisory
// findings are completeness hints for the catalog author.
func ValidateTable(t *TableDefinition) Issues {
	var issues Issues

	issues = append(issues, validateFields(t)...)
	issues = append(issues, validateSummary(t)...)
	issues = append(issues, validateComments(t)...)

	return issues
}

func validateFields(t *TableDefinition) Issues {
	var issues Issues

	seen := make(map[string]bool, len(t.Fields))
	autoIncrement := ""
	for _, f := range t.Fields {
		if seen[f.Name] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Kind:     KindDuplicateField,
				Table:    t.Name,
				Field:    f.Name,
				Message:  fmt.Sprintf("field %q declared more than once", f.Name),
			})
		}
		seen[f.Name] = true

		if f.AutoIncrement {
			if autoIncrement != "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Kind:     KindMultipleAutoIncrement,
					Table:    t.Name,
					Field:    f.Name,
					Message:  fmt.Sprintf("autoIncrement on %q but %q is already auto-incrementing; a table allows at most one", f.Name, autoIncrement),
				})
			} else {
				autoIncrement = f.Name
			}
		}

		if f.Unique && f.PrimaryKey {
			issues = append(issues, Issue{
				Severity: SeverityAdvisory,
				Kind:     KindUniquePrimaryKey,
				Table:    t.Name,
				Field:    f.Name,
				Message:  "unique flag on a primary key field is redundant",
			})
		}

		if !f.Nullable && f.DefaultVal == "" && !f.AutoIncrement {
			issues = append(issues, Issue{
				Severity: SeverityAdvisory,
				Kind:     KindRequiredWithoutDefault,
				Table:    t.Name,
				Field:    f.Name,
				Message:  "required field without a default; verify insert paths provide it",
			})
		}
	}

	return issues
}

// validateSummary enforces that the columns projection agrees with fields:
// every summary column names an existing field, pk flags match in both
// directions, and fk annotations carry a usable reference.
func validateSummary(t *TableDefinition) Issues {
	var issues Issues

	inSummary := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		inSummary[col.Name] = true

		f := t.FindField(col.Name)
		if f == nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Kind:     KindUnknownSummaryColumn,
				Table:    t.Name,
				Field:    col.Name,
				Message:  fmt.Sprintf("summary column %q does not exist in fields", col.Name),
			})
			continue
		}

		if col.PK != f.PrimaryKey {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Kind:     KindPrimaryKeyMismatch,
				Table:    t.Name,
				Field:    col.Name,
				Message:  pkMismatchMessage(col.PK),
			})
		}

		if col.FK {
			if _, _, ok := ParseRef(col.FkRef); !ok {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Kind:     KindInvalidReference,
					Table:    t.Name,
					Field:    col.Name,
					Ref:      col.FkRef,
					Message:  fmt.Sprintf("fk column %q needs an fkRef in \"table.column\" or \"table\" form", col.Name),
				})
			}
		}

		if col.Type != "" && col.Type != f.RenderedType() {
			issues = append(issues, Issue{
				Severity: SeverityAdvisory,
				Kind:     KindSummaryTypeDrift,
				Table:    t.Name,
				Field:    col.Name,
				Message:  fmt.Sprintf("summary shows type %q but the field declares %q", col.Type, f.RenderedType()),
			})
		}
	}

	// An empty summary is a plain omission; a partial one gets flagged so
	// the author can tell abbreviation from drift.
	if len(t.Columns) > 0 {
		for _, f := range t.Fields {
			if !inSummary[f.Name] {
				issues = append(issues, Issue{
					Severity: SeverityAdvisory,
					Kind:     KindSummaryOmitsField,
					Table:    t.Name,
					Field:    f.Name,
					Message:  fmt.Sprintf("field %q is not shown in the columns summary", f.Name),
				})
			}
		}
	}

	return issues
}

func validateComments(t *TableDefinition) Issues {
	var issues Issues

	if t.Comment == "" {
		issues = append(issues, Issue{
			Severity: SeverityAdvisory,
			Kind:     KindMissingComment,
			Table:    t.Name,
			Message:  "table has no comment",
		})
	}
	for _, f := range t.Fields {
		if f.Comment == "" {
			issues = append(issues, Issue{
				Severity: SeverityAdvisory,
				Kind:     KindMissingComment,
				Table:    t.Name,
				Field:    f.Name,
				Message:  fmt.Sprintf("field %q has no comment", f.Name),
			})
		}
	}

	return issues
}

func pkMismatchMessage(summaryPK bool) string {
	if summaryPK {
		return "summary marks the column pk but the field is not a primary key"
	}
	return "field is a primary key but the summary does not mark it pk"
}

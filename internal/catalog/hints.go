package catalog

import (
	"fmt"
	"regexp"
)

// refHintRe matches arrow references embedded in comment prose, the way the
// Xilian catalog annotates implicit links: "网关ID → edge_gateways" or
// "-> asset_nodes".
var refHintRe = regexp.MustCompile(`(?:→|->)\s*([A-Za-z_][A-Za-z0-9_]*)`)

// LintHints scans table and field comments for arrow references to other
// tables and flags the ones that exist in the catalog but are not covered by
// any declared relation. Comment text is non-normative, so every finding is
// advisory; the structured relation list stays the single source of truth
// for the graph.
func LintHints(reg *Registry) Issues {
	modeled := make(map[string]map[string]bool)
	for _, rel := range reg.DeclaredRelations() {
		if modeled[rel.FromTable] == nil {
			modeled[rel.FromTable] = make(map[string]bool)
		}
		modeled[rel.FromTable][rel.ToTable] = true
	}

	var issues Issues
	for _, t := range reg.AllTables() {
		issues = append(issues, lintComment(reg, modeled, t, "", t.Comment)...)
		for _, f := range t.Fields {
			issues = append(issues, lintComment(reg, modeled, t, f.Name, f.Comment)...)
		}
	}
	return issues
}

func lintComment(reg *Registry, modeled map[string]map[string]bool, t *TableDefinition, field, comment string) Issues {
	if comment == "" {
		return nil
	}

	var issues Issues
	for _, m := range refHintRe.FindAllStringSubmatch(comment, -1) {
		target := m[1]
		if reg.FindTable(target) == nil {
			// Plain prose, not a table we know.
			continue
		}
		if modeled[t.Name][target] {
			continue
		}
		issues = append(issues, Issue{
			Severity: SeverityAdvisory,
			Kind:     KindUnmodeledReference,
			Table:    t.Name,
			Field:    field,
			Ref:      target,
			Message:  fmt.Sprintf("comment points at %q but no relation to it is declared", target),
		})
	}
	return issues
}

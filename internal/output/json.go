package output

import (
	"encoding/json"

	"schemadesk/internal/catalog"
	"schemadesk/internal/console"
	"schemadesk/internal/diff"
	"schemadesk/internal/graph"
)

type jsonFormatter struct{}

type domainPayload struct {
	Name   string                     `json:"name"`
	Label  string                     `json:"label,omitempty"`
	Tables []*catalog.TableDefinition `json:"tables"`
}

type catalogPayload struct {
	Format    string           `json:"format"`
	Summary   console.Stats    `json:"summary"`
	Domains   []domainPayload  `json:"domains"`
	Relations []graph.Relation `json:"relations,omitempty"`
}

type issuesSummary struct {
	Fatal    int `json:"fatal"`
	Errors   int `json:"errors"`
	Advisory int `json:"advisory"`
}

type issuesPayload struct {
	Format  string         `json:"format"`
	Summary issuesSummary  `json:"summary"`
	Issues  catalog.Issues `json:"issues,omitempty"`
}

type diffSummary struct {
	AddedTables      int `json:"addedTables"`
	RemovedTables    int `json:"removedTables"`
	ModifiedTables   int `json:"modifiedTables"`
	AddedRelations   int `json:"addedRelations"`
	RemovedRelations int `json:"removedRelations"`
}

type diffPayload struct {
	Format           string                     `json:"format"`
	Summary          diffSummary                `json:"summary"`
	AddedTables      []*catalog.TableDefinition `json:"addedTables,omitempty"`
	RemovedTables    []*catalog.TableDefinition `json:"removedTables,omitempty"`
	ModifiedTables   []*diff.TableDiff          `json:"modifiedTables,omitempty"`
	AddedRelations   []catalog.RawRelation      `json:"addedRelations,omitempty"`
	RemovedRelations []catalog.RawRelation      `json:"removedRelations,omitempty"`
}

type Payload interface {
	catalogPayload | issuesPayload | diffPayload
}

func (jsonFormatter) FormatCatalog(c *console.Console) (string, error) {
	payload := catalogPayload{Format: string(FormatJSON)}
	if c != nil {
		payload.Summary = c.Stats()
		for _, d := range c.Domains() {
			payload.Domains = append(payload.Domains, domainPayload{
				Name:   d,
				Label:  c.DomainLabel(d),
				Tables: c.TablesInDomain(d),
			})
		}
		payload.Relations = c.Relations()
	}
	return marshalJSON(payload)
}

func (jsonFormatter) FormatIssues(issues catalog.Issues) (string, error) {
	payload := issuesPayload{
		Format: string(FormatJSON),
		Summary: issuesSummary{
			Fatal:    issues.Count(catalog.SeverityFatal),
			Errors:   issues.Count(catalog.SeverityError),
			Advisory: issues.Count(catalog.SeverityAdvisory),
		},
		Issues: issues,
	}
	return marshalJSON(payload)
}

func (jsonFormatter) FormatDiff(d *diff.CatalogDiff) (string, error) {
	payload := diffPayload{Format: string(FormatJSON)}
	if d != nil {
		payload.AddedTables = d.AddedTables
		payload.RemovedTables = d.RemovedTables
		payload.ModifiedTables = d.ModifiedTables
		payload.AddedRelations = d.AddedRelations
		payload.RemovedRelations = d.RemovedRelations
		payload.Summary = diffSummary{
			AddedTables:      len(d.AddedTables),
			RemovedTables:    len(d.RemovedTables),
			ModifiedTables:   len(d.ModifiedTables),
			AddedRelations:   len(d.AddedRelations),
			RemovedRelations: len(d.RemovedRelations),
		}
	}
	return marshalJSON(payload)
}

func marshalJSON[T Payload](payload T) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

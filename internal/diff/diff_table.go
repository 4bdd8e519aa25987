package diff

import (
	"strconv"

	"schemadesk/internal/catalog"
)

func compareTable(oldT, newT *catalog.TableDefinition, oldDomain, newDomain string) *TableDiff {
	td := &TableDiff{Name: newT.Name}

	c := &changeCollector{}
	c.Add("comment", oldT.Comment, newT.Comment)
	c.Add("displayName", oldT.DisplayName, newT.DisplayName)
	c.Add("description", oldT.Description, newT.Description)
	c.Add("domain", oldDomain, newDomain)
	c.Add("icon", oldT.Icon, newT.Icon)
	c.Add("engine", oldT.Engine, newT.Engine)
	c.Add("charset", oldT.Charset, newT.Charset)
	c.Add("collation", oldT.Collation, newT.Collation)
	td.TableChanges = c.Changes

	compareFields(oldT.Fields, newT.Fields, td)

	if len(td.TableChanges) == 0 && len(td.AddedFields) == 0 &&
		len(td.RemovedFields) == 0 && len(td.ModifiedFields) == 0 {
		return nil
	}
	return td
}

func compareFields(oldFields, newFields []*catalog.FieldDefinition, td *TableDiff) {
	oldMap := mapFieldsByName(oldFields)
	newMap := mapFieldsByName(newFields)

	// Iterate declaration order, not map order, so output stays stable.
	for _, nf := range newFields {
		of, exists := oldMap[nf.Name]
		if !exists {
			td.AddedFields = append(td.AddedFields, nf)
			continue
		}
		if changes := fieldChanges(of, nf); len(changes) > 0 {
			td.ModifiedFields = append(td.ModifiedFields, &FieldDiff{
				Name:    nf.Name,
				Old:     of,
				New:     nf,
				Changes: changes,
			})
		}
	}
	for _, of := range oldFields {
		if _, exists := newMap[of.Name]; !exists {
			td.RemovedFields = append(td.RemovedFields, of)
		}
	}
}

func fieldChanges(oldF, newF *catalog.FieldDefinition) []*PropertyChange {
	c := &changeCollector{}
	c.Add("type", oldF.RenderedType(), newF.RenderedType())
	c.Add("nullable", strconv.FormatBool(oldF.Nullable), strconv.FormatBool(newF.Nullable))
	c.Add("primaryKey", strconv.FormatBool(oldF.PrimaryKey), strconv.FormatBool(newF.PrimaryKey))
	c.Add("autoIncrement", strconv.FormatBool(oldF.AutoIncrement), strconv.FormatBool(newF.AutoIncrement))
	c.Add("unique", strconv.FormatBool(oldF.Unique), strconv.FormatBool(newF.Unique))
	c.Add("default", oldF.DefaultVal, newF.DefaultVal)
	c.Add("comment", oldF.Comment, newF.Comment)
	return c.Changes
}

func mapFieldsByName(fields []*catalog.FieldDefinition) map[string]*catalog.FieldDefinition {
	m := make(map[string]*catalog.FieldDefinition, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}

type changeCollector struct {
	Changes []*PropertyChange
}

func (c *changeCollector) Add(property, oldV, newV string) {
	if oldV == newV {
		return
	}
	c.Changes = append(c.Changes, &PropertyChange{Property: property, Old: oldV, New: newV})
}

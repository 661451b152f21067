// Package format renders records into a table projection for list views.
package format

import (
	"strconv"
	"time"

	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
)

const (
	// MaxColumns caps how many fields the table projection shows. The full
	// document stays available on the record itself.
	MaxColumns = 5

	maxCellRunes = 40
	emptyCell    = "—"
)

type Column struct {
	Name  string               `json:"name"`
	Label string               `json:"label"`
	Type  moduledomain.FieldType `json:"type"`
}

type Cell struct {
	Value   string `json:"value"`
	Variant string `json:"variant,omitempty"`
}

type Row struct {
	ID        string    `json:"id"`
	Cells     []Cell    `json:"cells"`
	CreatedAt time.Time `json:"created_at"`
}

type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// BuildTable projects records onto the first MaxColumns fields of the
// module.
func BuildTable(fields moduledomain.FieldList, records []recorddomain.Response) Table {
	visible := fields
	if len(visible) > MaxColumns {
		visible = visible[:MaxColumns]
	}

	columns := make([]Column, 0, len(visible))
	for _, field := range visible {
		columns = append(columns, Column{
			Name:  field.Name,
			Label: field.Label,
			Type:  field.Type.Normalize(),
		})
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		cells := make([]Cell, 0, len(visible))
		for _, field := range visible {
			cells = append(cells, buildCell(field, record.Data[field.Name]))
		}
		rows = append(rows, Row{
			ID:        record.ID,
			Cells:     cells,
			CreatedAt: record.CreatedAt,
		})
	}

	return Table{Columns: columns, Rows: rows}
}

func buildCell(field moduledomain.FieldDefinition, value any) Cell {
	text := CellValue(field, value)
	cell := Cell{Value: text}
	if field.Type.Normalize() == moduledomain.FieldTypeSelect && field.Name == "status" && text != emptyCell {
		cell.Variant = StatusVariant(text)
	}
	return cell
}

// CellValue renders one field value for display. Empty values render as an
// em dash, checkboxes as Yes or No, and long text is truncated.
func CellValue(field moduledomain.FieldDefinition, value any) string {
	switch field.Type.Normalize() {
	case moduledomain.FieldTypeCheckbox:
		if b, ok := value.(bool); ok && b {
			return "Yes"
		}
		return "No"
	case moduledomain.FieldTypeNumber:
		if f, ok := value.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}

	text, _ := value.(string)
	if text == "" {
		return emptyCell
	}
	return truncate(text, maxCellRunes)
}

// StatusVariant maps a pipeline status onto a display color.
func StatusVariant(status string) string {
	switch status {
	case "New":
		return "blue"
	case "Contacted":
		return "indigo"
	case "Qualified":
		return "purple"
	case "Proposal":
		return "amber"
	case "Negotiation":
		return "orange"
	case "Won":
		return "green"
	case "Lost":
		return "red"
	default:
		return "gray"
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}

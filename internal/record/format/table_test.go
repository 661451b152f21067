package format

import (
	"strings"
	"testing"

	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTableCapsColumns(t *testing.T) {
	fields := moduledomain.FieldList{
		{Name: "a", Label: "A", Type: moduledomain.FieldTypeText},
		{Name: "b", Label: "B", Type: moduledomain.FieldTypeText},
		{Name: "c", Label: "C", Type: moduledomain.FieldTypeText},
		{Name: "d", Label: "D", Type: moduledomain.FieldTypeText},
		{Name: "e", Label: "E", Type: moduledomain.FieldTypeText},
		{Name: "f", Label: "F", Type: moduledomain.FieldTypeText},
	}

	table := BuildTable(fields, []recorddomain.Response{{ID: "1", Data: map[string]any{"a": "x"}}})
	assert.Len(t, table.Columns, MaxColumns)
	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Rows[0].Cells, MaxColumns)
}

func TestCellValue(t *testing.T) {
	long := strings.Repeat("x", 45)

	cases := []struct {
		name  string
		field moduledomain.FieldDefinition
		value any
		want  string
	}{
		{"empty", moduledomain.FieldDefinition{Type: moduledomain.FieldTypeText}, "", "—"},
		{"missing", moduledomain.FieldDefinition{Type: moduledomain.FieldTypeText}, nil, "—"},
		{"checkbox true", moduledomain.FieldDefinition{Type: moduledomain.FieldTypeCheckbox}, true, "Yes"},
		{"checkbox false", moduledomain.FieldDefinition{Type: moduledomain.FieldTypeCheckbox}, false, "No"},
		{"checkbox missing", moduledomain.FieldDefinition{Type: moduledomain.FieldTypeCheckbox}, nil, "No"},
		{"number", moduledomain.FieldDefinition{Type: moduledomain.FieldTypeNumber}, 1500.5, "1500.5"},
		{"truncated", moduledomain.FieldDefinition{Type: moduledomain.FieldTypeText}, long, strings.Repeat("x", 40) + "…"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CellValue(tc.field, tc.value))
		})
	}
}

func TestStatusVariants(t *testing.T) {
	want := map[string]string{
		"New":         "blue",
		"Contacted":   "indigo",
		"Qualified":   "purple",
		"Proposal":    "amber",
		"Negotiation": "orange",
		"Won":         "green",
		"Lost":        "red",
		"Other":       "gray",
	}
	for status, variant := range want {
		assert.Equal(t, variant, StatusVariant(status), "status %q", status)
	}
}

func TestBuildTableStatusCellVariant(t *testing.T) {
	fields := moduledomain.FieldList{
		{Name: "name", Label: "Name", Type: moduledomain.FieldTypeText},
		{Name: "status", Label: "Status", Type: moduledomain.FieldTypeSelect, Options: []string{"New", "Won"}},
	}

	table := BuildTable(fields, []recorddomain.Response{
		{ID: "1", Data: map[string]any{"name": "Ada", "status": "Won"}},
		{ID: "2", Data: map[string]any{"name": "Bob"}},
	})

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Won", table.Rows[0].Cells[1].Value)
	assert.Equal(t, "green", table.Rows[0].Cells[1].Variant)
	assert.Equal(t, "—", table.Rows[1].Cells[1].Value)
	assert.Empty(t, table.Rows[1].Cells[1].Variant)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldNameFromLabel(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Name", "name"},
		{"Phone #", "phone"},
		{"  Budget (USD)  ", "budget_usd"},
		{"Email Address", "email_address"},
		{"a--b__c", "a_b_c"},
		{"Status", "status"},
		{"!!!", ""},
		{"", ""},
		{"Company / Org", "company_org"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FieldNameFromLabel(tc.label), "label %q", tc.label)
	}
}

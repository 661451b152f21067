package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
)

const dateLayout = "2006-01-02"

// coerceData checks a submission against the module's field definitions and
// returns the normalized document. Unknown keys are rejected, missing
// optional fields get their zero value, and every violation is collected so
// the caller sees all of them in one response.
func coerceData(fields moduledomain.FieldList, data map[string]any) (map[string]any, error) {
	verr := &recorddomain.ValidationError{}

	for key := range data {
		if _, ok := fields.ByName(key); !ok {
			verr.Fields = append(verr.Fields, recorddomain.FieldError{
				Field:   key,
				Message: "unknown field",
			})
		}
	}

	out := make(map[string]any, len(fields))
	for _, field := range fields {
		raw, present := data[field.Name]
		value, err := coerceValue(field, raw, present)
		if err != nil {
			verr.Fields = append(verr.Fields, recorddomain.FieldError{
				Field:   field.Name,
				Message: err.Error(),
			})
			continue
		}
		out[field.Name] = value
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}

func coerceValue(field moduledomain.FieldDefinition, raw any, present bool) (any, error) {
	switch field.Type.Normalize() {
	case moduledomain.FieldTypeCheckbox:
		return coerceCheckbox(field, raw, present)
	case moduledomain.FieldTypeNumber:
		return coerceNumber(field, raw, present)
	case moduledomain.FieldTypeDate:
		return coerceDate(field, coerceString(raw, present))
	case moduledomain.FieldTypeEmail:
		return coerceEmail(field, coerceString(raw, present))
	case moduledomain.FieldTypeSelect:
		return coerceSelect(field, coerceString(raw, present))
	default:
		value := coerceString(raw, present)
		if field.Required && value == "" {
			return nil, fmt.Errorf("required")
		}
		return value, nil
	}
}

func coerceString(raw any, present bool) string {
	if !present || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func coerceCheckbox(field moduledomain.FieldDefinition, raw any, present bool) (any, error) {
	value := false
	if present && raw != nil {
		switch v := raw.(type) {
		case bool:
			value = v
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("must be a boolean")
			}
			value = parsed
		default:
			return nil, fmt.Errorf("must be a boolean")
		}
	}
	// A required checkbox is a consent box; it must be ticked.
	if field.Required && !value {
		return nil, fmt.Errorf("must be checked")
	}
	return value, nil
}

func coerceNumber(field moduledomain.FieldDefinition, raw any, present bool) (any, error) {
	if !present || raw == nil || raw == "" {
		if field.Required {
			return nil, fmt.Errorf("required")
		}
		return "", nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("must be a number")
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("must be a number")
	}
}

func coerceDate(field moduledomain.FieldDefinition, value string) (any, error) {
	if value == "" {
		if field.Required {
			return nil, fmt.Errorf("required")
		}
		return "", nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return nil, fmt.Errorf("must be a date in YYYY-MM-DD format")
	}
	return value, nil
}

func coerceEmail(field moduledomain.FieldDefinition, value string) (any, error) {
	if value == "" {
		if field.Required {
			return nil, fmt.Errorf("required")
		}
		return "", nil
	}
	if !strings.Contains(value, "@") {
		return nil, fmt.Errorf("must be a valid email address")
	}
	return value, nil
}

func coerceSelect(field moduledomain.FieldDefinition, value string) (any, error) {
	if value == "" {
		if field.Required {
			return nil, fmt.Errorf("required")
		}
		return "", nil
	}
	for _, opt := range field.Options {
		if value == opt {
			return value, nil
		}
	}
	return nil, fmt.Errorf("must be one of: %s", strings.Join(field.Options, ", "))
}

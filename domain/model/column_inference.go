package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Common datetime patterns to detect
var datetimePatterns = []struct {
	pattern *regexp.Regexp
	formats []string // Multiple formats for the same pattern
}{
	// ISO8601 formats with timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339, time.RFC3339Nano},
	},
	// ISO8601 formats without timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.000"},
	},
	// ISO8601 date and time with space
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.000"},
	},
	// ISO8601 date only
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{"2006-01-02"},
	},
	// US formats
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		[]string{"1/2/2006", "01/02/2006"},
	},
	// European formats
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		[]string{"2.1.2006", "02.01.2006"},
	},
	// Time only
	{
		regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"15:04:05", "15:04:05.000", "3:04:05"},
	},
}

// isDatetime checks if a string value represents a datetime
func isDatetime(value string) bool {
	for _, dp := range datetimePatterns {
		if dp.pattern.MatchString(value) {
			for _, format := range dp.formats {
				if _, err := time.Parse(format, value); err == nil {
					return true
				}
			}
		}
	}
	return false
}

// ClassifyValue determines the type of a single, already trimmed value.
func ClassifyValue(value string) ColumnType {
	// Check if it's a datetime first (before checking numbers)
	if isDatetime(value) {
		return ColumnTypeDatetime
	}
	if isInteger(value) {
		return ColumnTypeInteger
	}
	if isFloat(value) {
		return ColumnTypeReal
	}
	return ColumnTypeText
}

func isInteger(value string) bool {
	if len(value) == 0 {
		return false
	}
	first := value[0]
	if first != '+' && first != '-' && (first < '0' || first > '9') {
		return false
	}
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

func isFloat(value string) bool {
	// Quick pre-check: must contain digits, which also rules out "NaN" and "Inf"
	if !strings.ContainsAny(value, "0123456789") {
		return false
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// InferColumnType infers the column type from a slice of string values.
// Empty values are ignored; any text value makes the whole column text.
func InferColumnType(values []string) ColumnType {
	hasDatetime := false
	hasReal := false
	hasInteger := false

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch ClassifyValue(value) {
		case ColumnTypeDatetime:
			hasDatetime = true
		case ColumnTypeInteger:
			hasInteger = true
		case ColumnTypeReal:
			hasReal = true
		default:
			return ColumnTypeText
		}
	}

	// Priority: DATETIME > REAL > INTEGER; datetime mixed with numbers is text
	switch {
	case hasDatetime && (hasReal || hasInteger):
		return ColumnTypeText
	case hasDatetime:
		return ColumnTypeDatetime
	case hasReal:
		return ColumnTypeReal
	case hasInteger:
		return ColumnTypeInteger
	default:
		return ColumnTypeText
	}
}

// InferColumnsInfo infers column information from header and data records.
// Absent values do not take part in inference.
func InferColumnsInfo(header Header, records []Record) []ColumnInfo {
	if len(header) == 0 {
		return nil
	}

	columns := make([]ColumnInfo, len(header))
	for i, name := range header {
		var values []string
		for _, record := range records {
			if v, ok := record.Get(name); ok && !v.IsNull() {
				values = append(values, v.String())
			}
		}
		columns[i] = ColumnInfo{
			Name: name,
			Type: InferColumnType(values),
		}
	}
	return columns
}

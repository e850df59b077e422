package sqlview

import "strings"

const defaultTableName = "table"

// TableName is the name of a snapshot table
type TableName struct {
	value string
}

// NewTableName creates a new TableName; a blank name becomes "table"
func NewTableName(name string) TableName {
	if strings.TrimSpace(name) == "" {
		return TableName{value: defaultTableName}
	}
	return TableName{value: strings.TrimSpace(name)}
}

// String returns the string representation of TableName
func (tn TableName) String() string {
	return tn.value
}

// Sanitize returns a version of the name made of ASCII letters, digits and
// underscores that does not start with a digit.
func (tn TableName) Sanitize() TableName {
	result := strings.NewReplacer(" ", "_", "-", "_", ".", "_").Replace(tn.value)

	var sanitized strings.Builder
	for _, r := range result {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			sanitized.WriteRune(r)
		}
	}

	final := sanitized.String()
	if final != "" && final[0] >= '0' && final[0] <= '9' {
		final = "table_" + final
	}
	if final == "" {
		final = defaultTableName
	}
	return TableName{value: final}
}

package models

import (
	"database/sql/driver"
)

// StringArray custom type for PostgreSQL text[]
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return "{" + stringArrayJoin(s) + "}", nil
}

func stringArrayJoin(arr []string) string {
	result := ""
	for i, v := range arr {
		if i > 0 {
			result += ","
		}
		result += "\"" + v + "\""
	}
	return result
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return s.parsePostgresArray(string(v))
	case string:
		return s.parsePostgresArray(v)
	}
	return nil
}

func (s *StringArray) parsePostgresArray(str string) error {
	if str == "{}" || str == "" {
		*s = []string{}
		return nil
	}

	str = str[1 : len(str)-1]

	var result []string
	var current string
	inQuotes := false

	for _, char := range str {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				result = append(result, current)
				current = ""
			} else {
				current += string(char)
			}
		default:
			current += string(char)
		}
	}

	if current != "" {
		result = append(result, current)
	}

	*s = result
	return nil
}

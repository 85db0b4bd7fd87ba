// Package dbarray provides support for postgres array types.
package dbarray

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// String represents a one-dimensional array of the PostgreSQL character types.
type String []string

// Scan implements the sql.Scanner interface.
func (a *String) Scan(src any) error {
	switch src := src.(type) {
	case []byte:
		return a.scanBytes(src)
	case string:
		return a.scanBytes([]byte(src))
	case nil:
		*a = nil
		return nil
	}

	return fmt.Errorf("dbarray: cannot convert %T to String", src)
}

func (a *String) scanBytes(src []byte) error {
	elems, err := scanLinearArray(src)
	if err != nil {
		return err
	}

	if *a != nil && len(elems) == 0 {
		*a = (*a)[:0]
		return nil
	}

	b := make(String, len(elems))
	copy(b, elems)
	*a = b

	return nil
}

// Value implements the driver.Valuer interface.
func (a String) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}

	if n := len(a); n > 0 {
		var sb strings.Builder
		sb.WriteByte('{')

		for i, s := range a {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`))
			sb.WriteByte('"')
		}

		sb.WriteByte('}')
		return sb.String(), nil
	}

	return "{}", nil
}

// scanLinearArray parses a simple one-dimensional postgres array literal.
func scanLinearArray(src []byte) ([]string, error) {
	s := string(src)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, fmt.Errorf("dbarray: unable to parse array: %q", s)
	}

	s = s[1 : len(s)-1]
	if s == "" {
		return []string{}, nil
	}

	var elems []string
	var sb strings.Builder
	inQuotes := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case escaped:
			sb.WriteByte(c)
			escaped = false

		case c == '\\':
			escaped = true

		case c == '"':
			inQuotes = !inQuotes

		case c == ',' && !inQuotes:
			elems = append(elems, sb.String())
			sb.Reset()

		default:
			sb.WriteByte(c)
		}
	}
	elems = append(elems, sb.String())

	return elems, nil
}

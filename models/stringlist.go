package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is an ordered list of strings persisted as JSON text.
//
// Clients send it either as a JSON array or as a single string; the string
// form may itself hold a JSON array (multipart forms) or a comma separated
// list.
type StringList []string

// ParseStringList decodes the textual forms accepted for a StringList.
func ParseStringList(s string) StringList {
	s = strings.TrimSpace(s)
	if s == "" {
		return StringList{}
	}
	if strings.HasPrefix(s, "[") {
		var out []string
		if err := json.Unmarshal([]byte(s), &out); err == nil {
			return StringList(out).compact()
		}
	}
	return StringList(strings.Split(s, ",")).compact()
}

func (l StringList) compact() StringList {
	out := make(StringList, 0, len(l))
	for _, v := range l {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
	case string:
		*l = ParseStringList(v)
	case []byte:
		*l = ParseStringList(string(v))
	default:
		return fmt.Errorf("models: cannot scan %T into StringList", src)
	}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l *StringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = StringList(arr).compact()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("models: expected a list of strings: %w", err)
	}
	*l = ParseStringList(s)
	return nil
}

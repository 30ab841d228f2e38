package domain

import (
	"strconv"
	"strings"
	"time"
)

// settingTimeLayouts are tried in order by TimeValue.
var settingTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Setting is one typed key/value store entry. The key is immutable after
// construction; the value is a string coerced on read. Coercion never fails —
// settings legitimately hold malformed or absent values, so getters return a
// safe default instead of an error.
type Setting struct {
	Entity
	key         string
	value       string
	description string
	updatedAt   time.Time
}

// NewSetting creates a setting. Key must be non-empty.
func NewSetting(key, value, description string) (*Setting, error) {
	if err := requireText("key", key); err != nil {
		return nil, err
	}
	return &Setting{
		key:         key,
		value:       value,
		description: description,
		updatedAt:   clock.Now().UTC(),
	}, nil
}

// RehydrateSetting rebuilds a setting from persisted state without
// validation.
func RehydrateSetting(id int64, key, value, description string, updatedAt time.Time) *Setting {
	s := &Setting{key: key, value: value, description: description, updatedAt: updatedAt}
	s.SetID(id)
	return s
}

func (s *Setting) Key() string          { return s.key }
func (s *Setting) Value() string        { return s.value }
func (s *Setting) Description() string  { return s.description }
func (s *Setting) UpdatedAt() time.Time { return s.updatedAt }

// UpdateValue replaces the value and refreshes the timestamp.
func (s *Setting) UpdateValue(value string) {
	s.value = value
	s.updatedAt = clock.Now().UTC()
}

// BoolValue parses the value as a boolean. Only "true" (any casing) is true;
// anything else, including "1" and "yes", is false.
func (s *Setting) BoolValue() bool {
	return strings.EqualFold(s.value, "true")
}

// IntValue parses the value as an integer, returning def when the value is
// empty or not an integer.
func (s *Setting) IntValue(def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s.value))
	if err != nil {
		return def
	}
	return n
}

// TimeValue parses the value against a small set of common layouts. The
// second return is false when no layout matches.
func (s *Setting) TimeValue() (time.Time, bool) {
	v := strings.TrimSpace(s.value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range settingTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

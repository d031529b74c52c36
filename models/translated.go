package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// TranslatedString is a per-language variant map for a single translatable
// field, e.g. {"en": "Drinks", "ru": "Напитки"}. It is stored as a JSON column.
type TranslatedString map[string]string

// Localize returns the variant for the requested language, falling back to the
// default language and then to any available variant. It never mutates the map,
// so concurrent readers with different languages are safe.
func (t TranslatedString) Localize(language, defaultLanguage string) string {
	if v, ok := t[language]; ok && v != "" {
		return v
	}
	if v, ok := t[defaultLanguage]; ok && v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// Set returns a copy with the variant for one language replaced.
func (t TranslatedString) Set(language, value string) TranslatedString {
	out := make(TranslatedString, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[language] = value
	return out
}

func (t TranslatedString) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *TranslatedString) Scan(value interface{}) error {
	if value == nil {
		*t = TranslatedString{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TranslatedString", value)
	}
	if len(data) == 0 {
		*t = TranslatedString{}
		return nil
	}
	if err := json.Unmarshal(data, t); err != nil {
		return errors.New("invalid translated string payload: " + err.Error())
	}
	return nil
}

// GormDataType tells gorm to create a plain TEXT column for translated fields.
func (TranslatedString) GormDataType() string {
	return "text"
}

// File: /models/types.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice is a custom type for handling JSON arrays of strings in database
type StringSlice []string

// Value implements driver.Valuer interface for database storage
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}

// Scan implements sql.Scanner interface for database retrieval
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ss)
	case string:
		return json.Unmarshal([]byte(v), ss)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// GormDataType returns the data type for GORM
func (StringSlice) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (ss StringSlice) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ss))
}

// EstablishmentList stores an event's candidate venues as a JSON column.
type EstablishmentList []Establishment

func (el EstablishmentList) Value() (driver.Value, error) {
	if el == nil {
		return json.Marshal([]Establishment{})
	}
	return json.Marshal(el)
}

func (el *EstablishmentList) Scan(value interface{}) error {
	if value == nil {
		*el = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, el)
	case string:
		return json.Unmarshal([]byte(v), el)
	default:
		return fmt.Errorf("cannot scan %T into EstablishmentList", value)
	}
}

func (EstablishmentList) GormDataType() string {
	return "json"
}

func (el EstablishmentList) MarshalJSON() ([]byte, error) {
	if el == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Establishment(el))
}

// ParticipantList stores an event's participants as a JSON column.
type ParticipantList []Participant

func (pl ParticipantList) Value() (driver.Value, error) {
	if pl == nil {
		return json.Marshal([]Participant{})
	}
	return json.Marshal(pl)
}

func (pl *ParticipantList) Scan(value interface{}) error {
	if value == nil {
		*pl = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, pl)
	case string:
		return json.Unmarshal([]byte(v), pl)
	default:
		return fmt.Errorf("cannot scan %T into ParticipantList", value)
	}
}

func (ParticipantList) GormDataType() string {
	return "json"
}

func (pl ParticipantList) MarshalJSON() ([]byte, error) {
	if pl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Participant(pl))
}

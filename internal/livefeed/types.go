package livefeed

import (
	"bytes"
	"encoding/json"
	"strings"
)

// flexText decodes a value that may be a string, a number, a bool or an object with a
// display field. Arrays and null decode to the empty string.
type flexText string

var displayKeys = []string{"displayValue", "displayName", "shortDisplayName", "name", "value", "number"}

func (f *flexText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexText(strings.TrimSpace(s))
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*f = ""
		for _, key := range displayKeys {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var inner flexText
			if err := inner.UnmarshalJSON(raw); err == nil && inner != "" {
				*f = inner
				return nil
			}
		}
	case '[', 'n':
		*f = ""
	default:
		*f = flexText(string(data))
	}
	return nil
}

func (f flexText) String() string {
	return string(f)
}

// flexBool decodes true/false from a bool or a string. A missing value stays nil.
type flexBool struct {
	set   bool
	value bool
}

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var t flexText
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	switch strings.ToLower(t.String()) {
	case "true", "1", "yes":
		*b = flexBool{set: true, value: true}
	case "false", "0", "no":
		*b = flexBool{set: true, value: false}
	default:
		*b = flexBool{}
	}
	return nil
}

type feedResponse struct {
	Events []json.RawMessage `json:"events"`
}

type feedEvent struct {
	Name         flexText          `json:"name"`
	Competitions []json.RawMessage `json:"competitions"`
}

type feedCompetition struct {
	Status      feedStatus        `json:"status"`
	Competitors []json.RawMessage `json:"competitors"`
}

// feedStatus is a competition or competitor status. Some endpoints send it as a
// plain string, which is kept as DisplayValue.
type feedStatus struct {
	Period       flexText       `json:"period"`
	DisplayValue flexText       `json:"displayValue"`
	Detail       flexText       `json:"detail"`
	Thru         flexText       `json:"thru"`
	Position     flexText       `json:"position"`
	Type         feedStatusType `json:"type"`
}

func (s *feedStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		var t flexText
		if err := t.UnmarshalJSON(data); err != nil {
			return err
		}
		*s = feedStatus{DisplayValue: t}
		return nil
	}
	type plain feedStatus
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = feedStatus(p)
	return nil
}

// feedStatusType is status.type; a bare string is kept as Name
type feedStatusType struct {
	Name        flexText `json:"name"`
	ShortDetail flexText `json:"shortDetail"`
	Description flexText `json:"description"`
	Detail      flexText `json:"detail"`
	State       flexText `json:"state"`
}

func (st *feedStatusType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		var t flexText
		if err := t.UnmarshalJSON(data); err != nil {
			return err
		}
		*st = feedStatusType{Name: t}
		return nil
	}
	type plain feedStatusType
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*st = feedStatusType(p)
	return nil
}

type feedCompetitor struct {
	Athlete    flexText        `json:"athlete"`
	Score      flexText        `json:"score"`
	Position   flexText        `json:"position"`
	Status     feedStatus      `json:"status"`
	Active     flexBool        `json:"active"`
	Linescores []feedLinescore `json:"linescores"`
}

type feedLinescore struct {
	Period flexText `json:"period"`
}

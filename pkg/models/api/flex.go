package api

import (
	"bytes"
	"encoding/json"
)

// Flex is a scalar that the clinic API sends either as a JSON string, a JSON
// number or null. Raw is the text as the user would see it.
type Flex struct {
	Raw    string
	Quoted bool
	Null   bool
}

func FlexString(s string) Flex {
	return Flex{Raw: s, Quoted: true}
}

func FlexNumber(s string) Flex {
	return Flex{Raw: s}
}

func (f Flex) String() string {
	return f.Raw
}

func (f *Flex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = Flex{Null: true}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flex{Raw: s, Quoted: true}
	case data[0] == '{' || data[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*f = Flex{Raw: buf.String()}
	default:
		*f = Flex{Raw: string(data)}
	}
	return nil
}

func (f Flex) MarshalJSON() ([]byte, error) {
	if f.Null {
		return []byte("null"), nil
	}
	if !f.Quoted && f.Raw != "" && json.Valid([]byte(f.Raw)) {
		return []byte(f.Raw), nil
	}
	return json.Marshal(f.Raw)
}

package report

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes the report as
//
//	{"tokenCategories": {name: [tokens]}, "lexicalErrors": [...],
//	 "syntaxErrors": [...], "semanticErrors": [...],
//	 "successMessages": [...], "summary": {label: count}}
//
// Object keys keep first-seen order.
func (r *ParsedReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"tokenCategories":{`)
	for i, c := range r.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, c.Name, c.Tokens); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`},`)

	lists := []struct {
		key string
		v   any
	}{
		{"lexicalErrors", r.LexicalErrors},
		{"syntaxErrors", r.SyntaxErrors},
		{"semanticErrors", r.SemanticErrors},
		{"successMessages", r.SuccessMessages},
	}
	for _, l := range lists {
		if err := writeMember(&buf, l.key, nonNil(l.v)); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}

	buf.WriteString(`"summary":{`)
	for i, label := range r.SummaryLabels {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, label, r.Summary[label]); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, v any) error {
	k, err := marshal(key)
	if err != nil {
		return err
	}
	val, err := marshal(v)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

// marshal is json.Marshal without HTML escaping.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func nonNil(v any) any {
	switch s := v.(type) {
	case []string:
		if s == nil {
			return []string{}
		}
	case []LexicalError:
		if s == nil {
			return []LexicalError{}
		}
	}
	return v
}

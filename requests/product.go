package requests

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// fieldKind classifies what the client actually sent for a field, so that
// "missing", "wrong type" and "out of range" stay distinguishable.
type fieldKind int

const (
	fieldMissing fieldKind = iota
	fieldString
	fieldNumber
	fieldOther
)

type rawField struct {
	kind fieldKind
	str  string
	num  float64
}

// ProductPayload is the loosely-typed body of a product create/update
// request. It is decoded from an arbitrary JSON object rather than bound to
// a struct, because validation must report per-field coercion problems.
type ProductPayload struct {
	name  rawField
	price rawField
}

// DecodeProductPayload parses a JSON object body into a ProductPayload.
// A nil error does not mean the payload is valid, only that it was a JSON
// object; call Validate for the field rules.
func DecodeProductPayload(body []byte) (*ProductPayload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.New("request body is not a JSON object")
	}

	p := &ProductPayload{}
	if v, ok := data["name"]; ok {
		p.name = classify(v)
	}
	if v, ok := data["price"]; ok {
		p.price = classify(v)
	}
	return p, nil
}

func classify(v any) rawField {
	switch t := v.(type) {
	case string:
		return rawField{kind: fieldString, str: t}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return rawField{kind: fieldOther}
		}
		return rawField{kind: fieldNumber, num: f}
	default:
		return rawField{kind: fieldOther}
	}
}

// Validate checks the payload and returns the violations in evaluation
// order: name rules first, then price rules. Both rules always run, so a
// payload failing both reports both.
func (p *ProductPayload) Validate() []string {
	var errs []string

	if p.name.kind != fieldString || strings.TrimSpace(p.name.str) == "" {
		errs = append(errs, "Name is required and must be a non-empty string")
	}

	switch p.price.kind {
	case fieldMissing:
		errs = append(errs, "Price is required")
	case fieldNumber:
		if p.price.num < 0 {
			errs = append(errs, "Price must be a non-negative number")
		}
	case fieldString:
		f, err := strconv.ParseFloat(strings.TrimSpace(p.price.str), 64)
		if err != nil {
			errs = append(errs, "Price must be a valid number")
		} else if f < 0 {
			errs = append(errs, "Price must be a non-negative number")
		}
	default:
		errs = append(errs, "Price must be a valid number")
	}

	return errs
}

// Name returns the validated product name. Only meaningful after Validate
// returned no violations.
func (p *ProductPayload) Name() string {
	return p.name.str
}

// Price returns the coerced price value. Only meaningful after Validate
// returned no violations.
func (p *ProductPayload) Price() float64 {
	if p.price.kind == fieldString {
		f, _ := strconv.ParseFloat(strings.TrimSpace(p.price.str), 64)
		return f
	}
	return p.price.num
}

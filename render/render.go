// Package render turns response values into JSON or XML bodies under a
// uniform shape, selected by a caller-supplied format parameter.
package render

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"

	// DefaultFormat is used when the request does not name one, and for
	// rendering format-negotiation errors themselves.
	DefaultFormat = FormatJSON
)

var ErrUnknownFormat = errors.New("unknown response format")

// ParseFormat resolves a raw format query value. The empty string means the
// default; anything other than json or xml is an input error, not a
// fallback.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(raw) {
	case "":
		return DefaultFormat, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatXML):
		return FormatXML, nil
	default:
		return "", ErrUnknownFormat
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatXML {
		return "application/xml"
	}
	return "application/json"
}

// Render serializes a value tree of maps, slices and scalars into the given
// format. The same value renders with structurally equivalent nesting in
// both formats: map keys become XML child elements, slice entries become
// <item> elements, scalars become element text. Map keys are emitted in
// sorted order so output is deterministic.
func Render(v any, f Format) ([]byte, string, error) {
	if f == FormatXML {
		var sb strings.Builder
		if err := buildXML(&sb, "response", v); err != nil {
			return nil, "", err
		}
		return []byte(sb.String()), f.ContentType(), nil
	}

	body, err := json.Marshal(v)
	if err != nil {
		return nil, "", err
	}
	return body, f.ContentType(), nil
}

func buildXML(sb *strings.Builder, tag string, v any) error {
	sb.WriteByte('<')
	sb.WriteString(tag)
	sb.WriteByte('>')

	// Reflection rather than a type switch so that named map and slice
	// types (gin.H included) walk the same as their plain counterparts.
	rv := reflect.ValueOf(v)
	switch {
	case v == nil:
		// empty element
	case rv.Kind() == reflect.Map:
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, fmt.Sprintf("%v", k.Interface()))
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := rv.MapIndex(reflect.ValueOf(k)).Interface()
			if err := buildXML(sb, k, child); err != nil {
				return err
			}
		}
	case rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := buildXML(sb, "item", rv.Index(i).Interface()); err != nil {
				return err
			}
		}
	default:
		if err := xml.EscapeText(sb, []byte(scalarText(v))); err != nil {
			return err
		}
	}

	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
	return nil
}

func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

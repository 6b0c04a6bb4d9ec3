// Converts string input into typed property values.

package templates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/maruel/notionctl/internal/notion"
)

// Coerce converts name=value input into property values according to a
// database schema as returned by the API.
func Coerce(schema map[string]notion.DBProperty, values map[string]string) (map[string]notion.PropertyValue, error) {
	out := make(map[string]notion.PropertyValue, len(values))
	for name, raw := range values {
		prop, ok := schema[name]
		if !ok {
			return nil, fmt.Errorf("unknown property %q", name)
		}
		v, err := Value(prop.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

// ParseAssignments splits "name=value" strings. The name may contain spaces;
// only the first "=" separates.
func ParseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected name=value", a)
		}
		out[name] = value
	}
	return out, nil
}

// Value converts raw into a value for a property of type typ.
func Value(typ, raw string) (notion.PropertyValue, error) {
	switch typ {
	case "title":
		return notion.PropertyValue{Title: notion.Text(raw)}, nil
	case "rich_text":
		return notion.PropertyValue{RichText: notion.Text(raw)}, nil
	case "number":
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return notion.PropertyValue{}, fmt.Errorf("invalid number %q", raw)
		}
		return notion.PropertyValue{Number: &f}, nil
	case "checkbox":
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return notion.PropertyValue{}, fmt.Errorf("invalid checkbox value %q", raw)
		}
		return notion.PropertyValue{Checkbox: &b}, nil
	case "select", "status":
		name := strings.TrimSpace(raw)
		if name == "" {
			return notion.PropertyValue{}, errors.New("empty option")
		}
		if typ == "status" {
			return notion.PropertyValue{Status: &notion.SelectOption{Name: name}}, nil
		}
		return notion.PropertyValue{Select: &notion.SelectOption{Name: name}}, nil
	case "multi_select":
		var opts []notion.SelectOption
		for n := range strings.SplitSeq(raw, ",") {
			if n = strings.TrimSpace(n); n != "" {
				opts = append(opts, notion.SelectOption{Name: n})
			}
		}
		if len(opts) == 0 {
			return notion.PropertyValue{}, errors.New("empty option list")
		}
		return notion.PropertyValue{MultiSelect: opts}, nil
	case "date":
		start, end, _ := strings.Cut(strings.TrimSpace(raw), "/")
		if err := checkDate(start); err != nil {
			return notion.PropertyValue{}, err
		}
		d := &notion.DateValue{Start: start}
		if end != "" {
			if err := checkDate(end); err != nil {
				return notion.PropertyValue{}, err
			}
			d.End = &end
		}
		return notion.PropertyValue{Date: d}, nil
	case "url":
		return notion.PropertyValue{URL: &raw}, nil
	case "email":
		return notion.PropertyValue{Email: &raw}, nil
	case "phone_number":
		return notion.PropertyValue{PhoneNumber: &raw}, nil
	case "":
		return notion.PropertyValue{}, errors.New("missing property type")
	default:
		return notion.PropertyValue{}, fmt.Errorf("type %q cannot be set from text", typ)
	}
}

// checkDate accepts an ISO 8601 date or an RFC 3339 timestamp.
func checkDate(s string) error {
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return nil
	}
	return fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", s)
}

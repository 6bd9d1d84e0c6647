package formatter

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const indentStep = "  "

// Serializer converts JSON objects to indented XML elements. Keys become element
// names in document order. It keeps no state between calls.
type Serializer struct {
	// Escape enables entity escaping of element text
	Escape bool
}

// NewSerializer creates a serializer
func NewSerializer(escape bool) *Serializer {
	return &Serializer{Escape: escape}
}

// Fields serializes the fields of obj without an enclosing element
func (s *Serializer) Fields(obj gjson.Result, indent string) string {
	var b strings.Builder
	s.WriteFields(&b, obj, indent)
	return b.String()
}

// WriteElement writes <name> at indent, the fields of obj at fieldIndent, then </name>
func (s *Serializer) WriteElement(b *strings.Builder, name string, obj gjson.Result, indent, fieldIndent string) {
	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">\n")
	s.WriteFields(b, obj, fieldIndent)
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">\n")
}

// WriteFields writes one element per key of obj. Non-objects produce nothing.
func (s *Serializer) WriteFields(b *strings.Builder, obj gjson.Result, indent string) {
	if !obj.IsObject() {
		return
	}
	obj.ForEach(func(key, value gjson.Result) bool {
		s.writeValue(b, key.String(), value, indent)
		return true
	})
}

func (s *Serializer) writeValue(b *strings.Builder, name string, v gjson.Result, indent string) {
	switch {
	case v.Type == gjson.Null:
		writeEmpty(b, name, indent)
	case v.IsArray():
		writeOpen(b, name, indent)
		s.writeItems(b, v, indent+indentStep)
		writeClose(b, name, indent)
	case v.IsObject():
		writeOpen(b, name, indent)
		s.WriteFields(b, v, indent+indentStep)
		writeClose(b, name, indent)
	default:
		b.WriteString(indent)
		b.WriteString("<")
		b.WriteString(name)
		b.WriteString(">")
		b.WriteString(s.text(v))
		b.WriteString("</")
		b.WriteString(name)
		b.WriteString(">\n")
	}
}

// writeItems writes each element of arr as <item> at indent. Object and array
// items have their content two steps deeper than the parent key.
func (s *Serializer) writeItems(b *strings.Builder, arr gjson.Result, indent string) {
	arr.ForEach(func(_, item gjson.Result) bool {
		switch {
		case item.Type == gjson.Null:
			writeEmpty(b, "item", indent)
		case item.IsObject():
			writeOpen(b, "item", indent)
			s.WriteFields(b, item, indent+indentStep)
			writeClose(b, "item", indent)
		case item.IsArray():
			writeOpen(b, "item", indent)
			s.writeItems(b, item, indent+indentStep)
			writeClose(b, "item", indent)
		default:
			b.WriteString(indent)
			b.WriteString("<item>")
			b.WriteString(s.text(item))
			b.WriteString("</item>\n")
		}
		return true
	})
}

func (s *Serializer) text(v gjson.Result) string {
	var t string
	switch v.Type {
	case gjson.String:
		t = v.Str
	case gjson.Number:
		t = formatNumber(v.Num)
	case gjson.True:
		t = "true"
	case gjson.False:
		t = "false"
	default:
		t = v.String()
	}
	if s.Escape {
		return xmlEscape(t)
	}
	return t
}

func writeEmpty(b *strings.Builder, name, indent string) {
	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(" />\n")
}

func writeOpen(b *strings.Builder, name, indent string) {
	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">\n")
}

func writeClose(b *strings.Builder, name, indent string) {
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">\n")
}

// formatNumber renders f the way JavaScript's Number#toString does: plain
// decimal from 1e-6 up to 1e21, exponent form outside, "-0" as "0".
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	mant, exp := s[:i], s[i+1:]
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}

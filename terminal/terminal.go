// Package terminal renders decoded field bags as indented JSON, with
// optional color for interactive use.
package terminal

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Printer writes JSON values. Keys are emitted in the order given by Less,
// or sorted by name when Less is nil.
type Printer struct {
	Out    io.Writer
	Indent string
	Less   func(a, b string) bool

	key    *color.Color
	str    *color.Color
	num    *color.Color
	symbol *color.Color
}

// NewPrinter returns a printer writing to out.
func NewPrinter(out io.Writer, colored bool) *Printer {
	p := &Printer{
		Out:    out,
		Indent: "  ",
		key:    color.New(color.FgBlue, color.Bold),
		str:    color.New(color.FgGreen),
		num:    color.New(color.FgCyan),
		symbol: color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.key, p.str, p.num, p.symbol} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Print writes v followed by a newline.
func (p *Printer) Print(v interface{}) error {
	var sb strings.Builder
	if err := p.write(&sb, v, 0); err != nil {
		return err
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(p.Out, sb.String())
	return err
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func (p *Printer) write(sb *strings.Builder, v interface{}, depth int) error {
	pad := strings.Repeat(p.Indent, depth+1)
	switch x := v.(type) {
	case nil:
		sb.WriteString(p.symbol.Sprint("null"))
	case bool:
		sb.WriteString(p.symbol.Sprint(x))
	case string:
		sb.WriteString(p.str.Sprint(quote(x)))
	case json.Number:
		sb.WriteString(p.num.Sprint(x.String()))
	case float64, int, int64, uint32, uint64:
		sb.WriteString(p.num.Sprint(x))
	case map[string]interface{}:
		if len(x) == 0 {
			sb.WriteString("{}")
			return nil
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		if p.Less != nil {
			sort.SliceStable(keys, func(i, j int) bool { return p.Less(keys[i], keys[j]) })
		} else {
			sort.Strings(keys)
		}
		sb.WriteString("{\n")
		for i, k := range keys {
			sb.WriteString(pad)
			sb.WriteString(p.key.Sprint(quote(k)))
			sb.WriteString(": ")
			if err := p.write(sb, x[k], depth+1); err != nil {
				return err
			}
			if i < len(keys)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Repeat(p.Indent, depth))
		sb.WriteByte('}')
	case []interface{}:
		if len(x) == 0 {
			sb.WriteString("[]")
			return nil
		}
		sb.WriteString("[\n")
		for i, item := range x {
			sb.WriteString(pad)
			if err := p.write(sb, item, depth+1); err != nil {
				return err
			}
			if i < len(x)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Repeat(p.Indent, depth))
		sb.WriteByte(']')
	case []map[string]interface{}:
		list := make([]interface{}, len(x))
		for i, m := range x {
			list[i] = m
		}
		return p.write(sb, list, depth)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Errorf("terminal: cannot render %T: %w", v, err)
		}
		sb.WriteString(string(b))
	}
	return nil
}

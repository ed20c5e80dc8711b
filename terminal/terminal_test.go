package terminal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainOutputIsJSON(t *testing.T) {
	bag := map[string]interface{}{
		"TransactionType": "Payment",
		"Sequence":        json.Number("9"),
		"Memos": []interface{}{
			map[string]interface{}{"Memo": map[string]interface{}{"MemoData": "72656E74"}},
		},
		"Paths":  []interface{}{},
		"Amount": map[string]interface{}{"value": "1e-20", "currency": "EUR", "issuer": "r\"quoted"},
	}
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false).Print(bag))
	assert.NotContains(t, buf.String(), "\x1b[")

	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	var back map[string]interface{}
	require.NoError(t, dec.Decode(&back))
	assert.Equal(t, bag, back)
}

func TestKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.Less = func(a, b string) bool { return len(a) < len(b) }
	require.NoError(t, p.Print(map[string]interface{}{"ccc": 1, "a": 2, "bb": 3}))
	out := buf.String()
	assert.True(t, strings.Index(out, `"a"`) < strings.Index(out, `"bb"`))
	assert.True(t, strings.Index(out, `"bb"`) < strings.Index(out, `"ccc"`))
}

func TestColoredOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, true).Print(map[string]interface{}{"Fee": "10"}))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "Fee")
}

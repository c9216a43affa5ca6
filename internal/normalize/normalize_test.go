package normalize

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrings(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		delim string
		want  []string
	}{
		{"nil", nil, Comma, []string{}},
		{"native list", []string{" React", "", "Go "}, Comma, []string{"React", "Go"}},
		{"decoded any list", []any{"a", float64(7), json.Number("42"), nil}, Comma, []string{"a", "7", "42"}},
		{"json array string", `["React","Node.js"]`, Comma, []string{"React", "Node.js"}},
		{"json array of ids", `[1, 2, "3"]`, Comma, []string{"1", "2", "3"}},
		{"comma string", "React, Node.js, SQL", Comma, []string{"React", "Node.js", "SQL"}},
		{"semicolon string", "Go; Rust ;", Semicolon, []string{"Go", "Rust"}},
		{"broken json falls back to split", `["React", "Go"`, Comma, []string{`["React"`, `"Go"`}},
		{"array followed by text splits", `["React"], Go`, Comma, []string{`["React"]`, "Go"}},
		{"two arrays are not one list", `["a"] ["b"]`, Comma, []string{`["a"] ["b"]`}},
		{"raw array with trailing value", json.RawMessage(`["x"] 1`), Comma, []string{`["x"] 1`}},
		{"scalar string", "42", Comma, []string{"42"}},
		{"blank string", "   ", Comma, []string{}},
		{"raw json array", json.RawMessage(`["x"," y "]`), Comma, []string{"x", "y"}},
		{"raw json string holding array", json.RawMessage(`"[\"x\",\"y\"]"`), Comma, []string{"x", "y"}},
		{"raw json delimited string", json.RawMessage(`"a, b"`), Comma, []string{"a", "b"}},
		{"raw null", json.RawMessage(`null`), Comma, []string{}},
		{"number", 7, Comma, []string{"7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strings(tt.in, tt.delim)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Strings(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestStringsIsIdempotent(t *testing.T) {
	inputs := []any{
		"React, Node.js, SQL",
		`["a", " b ", ""]`,
		[]any{"x", float64(3)},
		nil,
	}
	for _, in := range inputs {
		once := Strings(in, Comma)
		twice := Strings(once, Comma)
		assert.Equal(t, once, twice)
	}
}

func TestRoundTripThroughEveryForm(t *testing.T) {
	list := Strings("React, Node.js, SQL", Comma)
	require.Equal(t, []string{"React", "Node.js", "SQL"}, list)

	for _, form := range []Form{FormArray, FormJSON, FormDelimited} {
		stored := Encode(list, form)
		assert.Equal(t, list, Strings(stored, Comma), "form %d", form)
	}
}

func TestListJSON(t *testing.T) {
	var row struct {
		Tecnologias List `json:"tecnologias"`
		SoftSkills  List `json:"soft_skills"`
		Proyectos   List `json:"proyectos"`
	}
	body := `{"tecnologias":"[\"Go\",\"SQL\"]","soft_skills":"Liderazgo, Comunicación","proyectos":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &row))

	assert.Equal(t, List{"Go", "SQL"}, row.Tecnologias)
	assert.Equal(t, List{"Liderazgo", "Comunicación"}, row.SoftSkills)
	assert.Equal(t, List{}, row.Proyectos)

	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tecnologias":["Go","SQL"],"soft_skills":["Liderazgo","Comunicación"],"proyectos":[]}`, string(out))
}

func TestListScanAndValue(t *testing.T) {
	var l List
	require.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, List{"a", "b"}, l)

	require.NoError(t, l.Scan("c, d"))
	assert.Equal(t, List{"c", "d"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	assert.Error(t, l.Scan(42))

	v, err := List{"x"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, v)
}

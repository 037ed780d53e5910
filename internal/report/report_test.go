package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string, shapes ...Shape) *Document {
	t.Helper()
	doc, err := Parse([]byte(body))
	require.NoError(t, err)
	require.NoError(t, doc.Decode(shapes...))
	return doc
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{name: "plain", in: `{"x":1.5,"y":-2}`, want: 1.5},
		{name: "quoted infinity", in: `{"x":"Infinity","y":0}`, want: math.Inf(1)},
		{name: "bare infinity", in: `{"x":Infinity,"y":0}`, want: math.Inf(1)},
		{name: "bare negative infinity", in: `{"x":-Infinity,"y":0}`, want: math.Inf(-1)},
		{name: "numeric string", in: `{"x":"42","y":0}`, want: 42},
		{name: "null", in: `{"x":null,"y":0}`, want: 0},
	}
	for _, c := range cases {
		doc := decode(t, `{"AgentPositions":[{"agentname":"a","positions":[`+c.in+`]}]}`, ShapeAgents)
		got := doc.Report.Agents[0].Positions[0].X.Float64()
		assert.Equal(t, c.want, got, c.name)
	}
}

func TestNumber_InfinityInItems(t *testing.T) {
	doc := decode(t, `{"items":[{"name":"sword","amountOfUses":"Infinity","damages":[1,"Infinity",NaN]}]}`, ShapeItemDamage)
	item := doc.Report.Items[0]
	assert.True(t, math.IsInf(item.AmountOfUses.Float64(), 1))
	require.Len(t, item.Damages, 3)
	assert.True(t, math.IsInf(item.Damages[1].Float64(), 1))
	assert.True(t, math.IsNaN(item.Damages[2].Float64()))
}

func TestNumber_RejectsGarbage(t *testing.T) {
	doc, err := Parse([]byte(`{"items":[{"name":"sword","amountOfUses":"lots"}]}`))
	require.NoError(t, err)
	assert.ErrorContains(t, doc.Decode(ShapeItemUsage), "items:")
}

func TestQuoteNonFinite_LeavesStringsAlone(t *testing.T) {
	doc := decode(t, `{"items":[{"name":"Infinity \"NaN\" blade","amountOfUses":3}]}`, ShapeItemUsage)
	assert.Equal(t, `Infinity "NaN" blade`, doc.Report.Items[0].Name)
	assert.EqualValues(t, 3, doc.Report.Items[0].AmountOfUses)
}

func TestAgentNameVariants(t *testing.T) {
	doc := decode(t, `{"agents":[{"agentName":"camel","positions":[]},{"agentname":"lower","positions":[{"x":1,"y":2}]}]}`, ShapeAgents)
	require.Len(t, doc.Report.Agents, 2)
	assert.Equal(t, "camel", doc.Report.Agents[0].Name)
	a, ok := doc.Report.Agent("lower")
	require.True(t, ok)
	assert.EqualValues(t, 2, a.Positions[0].Y)
	_, ok = doc.Report.Agent("missing")
	assert.False(t, ok)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_Zstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json.zst")
	f, err := os.Create(path)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(`{"items":[{"name":"bow","amountOfUses":7}]}`))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	doc, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, doc.Decode(ShapeItemUsage))
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "bow", doc.Report.Items[0].Name)
}

func TestClassifier_Classify(t *testing.T) {
	c, err := NewClassifier()
	require.NoError(t, err)

	cases := []struct {
		name string
		in   string
		want []Shape
	}{
		{name: "usage", in: `{"items":[{"name":"a","amountOfUses":1,"damages":[1]}]}`, want: []Shape{ShapeItemUsage}},
		{name: "damage", in: `{"items":[{"name":"a","damages":[1,2]}]}`, want: []Shape{ShapeItemDamage}},
		{name: "agent positions", in: `{"AgentPositions":[]}`, want: []Shape{ShapeAgents}},
		{name: "agents", in: `{"agents":[]}`, want: []Shape{ShapeAgents}},
		{name: "interactions", in: `{"agentInteractions":[],"items":[{"amountOfUses":1}]}`, want: []Shape{ShapeInteractions}},
		{name: "agents and interactions", in: `{"agents":[],"agentInteractions":[]}`, want: []Shape{ShapeAgents, ShapeInteractions}},
		{name: "empty items", in: `{"items":[]}`, want: nil},
		{name: "no keys", in: `{"something":1}`, want: nil},
		{name: "first item decides", in: `{"items":[{"name":"a"},{"amountOfUses":1}]}`, want: nil},
		{name: "top-level array", in: `[{"items":[]}]`, want: nil},
		{name: "items not an array", in: `{"items":"x"}`, want: nil},
		{name: "agents not an array", in: `{"agents":{"guard":{}}}`, want: nil},
		{name: "interactions not an array", in: `{"agentInteractions":5}`, want: nil},
		{name: "item not an object", in: `{"items":[1]}`, want: nil},
	}
	for _, tc := range cases {
		doc, err := Parse([]byte(tc.in))
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, c.Classify(doc), tc.name)
	}
}

func TestDecode_LenientNames(t *testing.T) {
	doc := decode(t, `{"items":[{"name":5,"amountOfUses":1},{"name":true},{"name":null}],
		"agentInteractions":[{"name":7.5,"interactionCount":2}],
		"agents":[{"agentname":12,"positions":[]}]}`,
		ShapeAgents, ShapeInteractions, ShapeItemUsage)
	assert.Equal(t, "5", doc.Report.Items[0].Name)
	assert.Equal(t, "true", doc.Report.Items[1].Name)
	assert.Equal(t, "", doc.Report.Items[2].Name)
	assert.Equal(t, "7.5", doc.Report.Interactions[0].Name)
	assert.Equal(t, "12", doc.Report.Agents[0].Name)
}

func TestDecode_OnlyRequestedKeys(t *testing.T) {
	doc := decode(t, `{"agents":[{"agentname":"a","positions":[]}],"items":[{"amountOfUses":"lots"}]}`, ShapeAgents)
	require.Len(t, doc.Report.Agents, 1)
	assert.Empty(t, doc.Report.Items)
}

func TestDecode_AgentKeyPrecedence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "AgentPositions wins", in: `{"AgentPositions":[{"agentname":"a"}],"agents":[{"agentname":"b"}]}`, want: "a"},
		{name: "empty AgentPositions falls back", in: `{"AgentPositions":[],"agents":[{"agentname":"b"}]}`, want: "b"},
		{name: "null AgentPositions falls back", in: `{"AgentPositions":null,"agents":[{"agentname":"b"}]}`, want: "b"},
		{name: "non-array AgentPositions ignored", in: `{"AgentPositions":{},"agents":[{"agentname":"b"}]}`, want: "b"},
	}
	for _, tc := range cases {
		doc := decode(t, tc.in, ShapeAgents)
		require.Len(t, doc.Report.Agents, 1, tc.name)
		assert.Equal(t, tc.want, doc.Report.Agents[0].Name, tc.name)
	}
}

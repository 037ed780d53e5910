package report

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

var numberType = reflect.TypeOf(Number(0))

// Number is a JSON number that also accepts the string forms telemetry
// exporters write for non-finite values ("Infinity", "-Infinity", "NaN")
// and plain numeric strings.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(raw), Type: numberType}
	}
	*n = Number(f)
	return nil
}

// Float64 returns n as a float64.
func (n Number) Float64() float64 { return float64(n) }

// label decodes a display name. Telemetry exporters sometimes write names
// as numbers or booleans; those keep their JSON text.
type label string

func (l *label) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(raw, []byte("null")):
		*l = ""
	case len(raw) > 0 && raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*l = label(s)
	default:
		*l = label(raw)
	}
	return nil
}

// Item holds usage and damage statistics for a single game item.
type Item struct {
	Name         string
	AmountOfUses Number
	Damages      []Number
}

// UnmarshalJSON implements json.Unmarshaler.
func (it *Item) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name         label    `json:"name"`
		AmountOfUses Number   `json:"amountOfUses"`
		Damages      []Number `json:"damages"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*it = Item{Name: string(aux.Name), AmountOfUses: aux.AmountOfUses, Damages: aux.Damages}
	return nil
}

// Position is one recorded grid position of an agent.
type Position struct {
	X Number `json:"x"`
	Y Number `json:"y"`
}

// Agent is an entity with a recorded path of 2D positions.
type Agent struct {
	Name      string
	Positions []Position
}

// UnmarshalJSON accepts both "agentname" and "agentName".
func (a *Agent) UnmarshalJSON(data []byte) error {
	var aux struct {
		Lower     *label     `json:"agentname"`
		Camel     *label     `json:"agentName"`
		Positions []Position `json:"positions"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.Lower != nil:
		a.Name = string(*aux.Lower)
	case aux.Camel != nil:
		a.Name = string(*aux.Camel)
	}
	a.Positions = aux.Positions
	return nil
}

// Interaction counts how often the observed agent interacted with a named agent.
type Interaction struct {
	Name             string
	InteractionCount Number
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *Interaction) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name             label  `json:"name"`
		InteractionCount Number `json:"interactionCount"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*in = Interaction{Name: string(aux.Name), InteractionCount: aux.InteractionCount}
	return nil
}

// Report is the typed part of a telemetry export that was decoded for the
// shapes being rendered.
type Report struct {
	Items        []Item
	Agents       []Agent
	Interactions []Interaction
}

// Agent returns the agent with the given name.
func (r *Report) Agent(name string) (Agent, bool) {
	for _, a := range r.Agents {
		if a.Name == name {
			return a, true
		}
	}
	return Agent{}, false
}

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ErrNotFound is returned by Load when the report file does not exist.
var ErrNotFound = errors.New("report not found")

// Document is a loaded report. Its generic JSON form is what shape
// classification runs against; Report is filled by Decode.
type Document struct {
	Path   string
	Report Report
	tree   any
	fields map[string]json.RawMessage
}

// Load reads and decodes the report at path. Files ending in ".zst" are
// zstd-decompressed first.
func Load(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse reads raw JSON into a Document. Only syntax is checked here; typed
// decoding waits until the shapes to render are known.
func Parse(data []byte) (*Document, error) {
	data = quoteNonFinite(data)
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	doc := &Document{tree: tree}
	// Non-object documents carry no report keys; classification rejects them.
	if _, ok := tree.(map[string]any); ok {
		if err := json.Unmarshal(data, &doc.fields); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Decode fills Report with the keys read by shapes. Agents come from
// "AgentPositions", falling back to "agents" when that holds no agents.
func (d *Document) Decode(shapes ...Shape) error {
	for _, s := range shapes {
		var err error
		switch s {
		case ShapeAgents:
			err = d.decodeField("AgentPositions", &d.Report.Agents)
			if err == nil && len(d.Report.Agents) == 0 {
				err = d.decodeField("agents", &d.Report.Agents)
			}
		case ShapeInteractions:
			err = d.decodeField("agentInteractions", &d.Report.Interactions)
		case ShapeItemUsage, ShapeItemDamage:
			err = d.decodeField("items", &d.Report.Items)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// decodeField decodes key into dst when it holds an array.
func (d *Document) decodeField(key string, dst any) error {
	raw, ok := d.fields[key]
	if !ok {
		return nil
	}
	if _, isArray := d.tree.(map[string]any)[key].([]any); !isArray {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if !strings.HasSuffix(strings.ToLower(path), ".zst") {
		return io.ReadAll(f)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return data, nil
}

var nonFiniteTokens = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// quoteNonFinite turns the bare Infinity, -Infinity and NaN tokens some
// exporters emit into strings, which Number then accepts. Text inside JSON
// strings is left alone.
func quoteNonFinite(data []byte) []byte {
	if !bytes.Contains(data, []byte("Infinity")) && !bytes.Contains(data, []byte("NaN")) {
		return data
	}
	out := make([]byte, 0, len(data)+16)
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch c {
			case '\\':
				if i+1 < len(data) {
					i++
					out = append(out, data[i])
				}
			case '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		matched := false
		for _, tok := range nonFiniteTokens {
			if bytes.HasPrefix(data[i:], tok) {
				out = append(out, '"')
				out = append(out, tok...)
				out = append(out, '"')
				i += len(tok) - 1
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, c)
		}
	}
	return out
}

package layout

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// KeyMap maps a character to its candidate chord strings, in priority
// order. It is the data the scorer consumes; the engine side never
// sees it.
type KeyMap map[byte][]string

// Strings converts the map to the string-keyed form of the scorer API.
func (m KeyMap) Strings() map[string][]string {
	out := make(map[string][]string, len(m))
	for b, chords := range m {
		out[string(b)] = chords
	}
	return out
}

// keyMapSchema constrains JSON key maps: single-character keys, each
// mapping to an array of digit strings.
const keyMapSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"propertyNames": {"minLength": 1, "maxLength": 1},
	"additionalProperties": {
		"type": "array",
		"items": {"type": "string", "pattern": "^[0-9]{1,5}$"}
	}
}`

var compiledKeyMapSchema = jsonschema.MustCompileString("keymap.schema.json", keyMapSchema)

// LoadKeyMap reads a key-map file, choosing the parser by extension:
// .json (schema-validated), .yaml/.yml, anything else the layout text
// format.
func LoadKeyMap(path string) (KeyMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSONKeyMap(data)
	case ".yaml", ".yml":
		return ParseYAMLKeyMap(data)
	default:
		return ParseTextKeyMap(bytes.NewReader(data))
	}
}

// ParseJSONKeyMap validates data against the key-map schema and
// decodes it.
func ParseJSONKeyMap(data []byte) (KeyMap, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("parse key map: %w", err)
	}
	if err := compiledKeyMapSchema.Validate(instance); err != nil {
		return nil, fmt.Errorf("key map schema: %w", err)
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse key map: %w", err)
	}
	return fromStringMap(raw)
}

// ParseYAMLKeyMap decodes a YAML key map of the same shape as the JSON
// form.
func ParseYAMLKeyMap(data []byte) (KeyMap, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse key map: %w", err)
	}
	return fromStringMap(raw)
}

func fromStringMap(raw map[string][]string) (KeyMap, error) {
	m := make(KeyMap, len(raw))
	for key, chords := range raw {
		if len(key) != 1 {
			return nil, fmt.Errorf("key map key %q is not a single character", key)
		}
		m[key[0]] = chords
	}
	return m, nil
}

// ParseTextKeyMap reads the layout text format produced by the layout
// generator: a "Chord Assignments:" header followed by lines like
//
//	a     -> 0011
//	'\t'  -> 2100, 2200
//
// Control characters appear single-quoted; comma-separated chords are
// aliases in priority order. Separator lines of = or - are skipped.
func ParseTextKeyMap(r io.Reader) (KeyMap, error) {
	m := make(KeyMap)
	scanner := bufio.NewScanner(r)
	inAssignments := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Chord Assignments:") {
			inAssignments = true
			continue
		}
		if !inAssignments || line == "" {
			continue
		}
		if strings.HasPrefix(line, strings.Repeat("=", 10)) ||
			strings.HasPrefix(line, strings.Repeat("-", 10)) {
			continue
		}
		charPart, chordPart, found := strings.Cut(line, "->")
		if !found {
			continue
		}
		key, ok := parseKeyChar(charPart)
		if !ok {
			continue
		}
		var chords []string
		for _, alias := range strings.Split(chordPart, ",") {
			if alias = strings.TrimSpace(alias); alias != "" {
				chords = append(chords, alias)
			}
		}
		if len(chords) > 0 {
			m[key] = chords
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseKeyChar(s string) (byte, bool) {
	s = strings.TrimLeft(s, " ")
	if s == "" {
		return 0, false
	}
	// Quoted forms carry escapes: '\t', '\n', ' '.
	if len(s) > 2 && strings.HasPrefix(s, "'") {
		if trimmed := strings.TrimRight(s, " "); strings.HasSuffix(trimmed, "'") {
			if unquoted, err := strconv.Unquote(trimmed); err == nil && len(unquoted) == 1 {
				return unquoted[0], true
			}
		}
	}
	return s[0], true
}

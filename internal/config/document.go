package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/trebuchet-org/solbuild/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format is the declaration format of a build document
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DetectFormat picks the document format from the file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unsupported document format %q (expected .toml, .yaml, .yml or .json)", domain.ErrMalformedDocument, filepath.Ext(path))
	}
}

// decodeTree parses raw document bytes into a generic key/value tree
func decodeTree(data []byte, format Format) (map[string]any, error) {
	root := map[string]any{}

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &root); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: unexpected data after top-level object", domain.ErrMalformedDocument)
		}
		if err := checkDuplicateKeys(data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported document format %q", domain.ErrMalformedDocument, format)
	}

	if root == nil {
		root = map[string]any{}
	}
	return root, nil
}

// checkDuplicateKeys rejects JSON objects that repeat a key. TOML and YAML
// decoders refuse duplicates; encoding/json would keep the last one.
func checkDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return walkJSONValue(dec, "")
}

func walkJSONValue(dec *json.Decoder, path string) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}

	switch delim {
	case '{':
		seen := make(map[string]struct{})
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
			}
			key, _ := keyTok.(string)
			keyPath := joinPath(path, key)
			if _, dup := seen[key]; dup {
				return fmt.Errorf("%w: duplicate key %q", domain.ErrMalformedDocument, keyPath)
			}
			seen[key] = struct{}{}
			if err := walkJSONValue(dec, keyPath); err != nil {
				return err
			}
		}
	case '[':
		for dec.More() {
			if err := walkJSONValue(dec, path); err != nil {
				return err
			}
		}
	}

	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	return nil
}

// document is the typed form of a build document, before defaults and validation
type document struct {
	Networks           map[string]networkSpec
	ContractsDirectory string
	BuildDirectory     string
	Solc               solcSpec
	DBEnabled          bool
}

type networkSpec struct {
	Host       string `key:"host" validate:"required,lowercase,noscheme"`
	Port       int64  `key:"port" validate:"min=1,max=65535"`
	NetworkID  int64  `key:"network_id" validate:"required_unless=AnyNetwork true,gte=0"`
	AnyNetwork bool   `key:"-"`
}

type solcSpec struct {
	Version          string `key:"version" validate:"omitempty,semver"`
	EVMVersion       string `key:"evmVersion" validate:"omitempty,evmversion"`
	OptimizerEnabled bool   `key:"optimizer.enabled"`
	OptimizerRuns    int64  `key:"optimizer.runs" validate:"min=0,max=4294967295"`
	runsSet          bool
}

// parseDocument walks the generic tree into a document, checking value types.
// Keys this tool doesn't consume are ignored.
func parseDocument(root map[string]any) (*document, error) {
	doc := &document{
		Networks: make(map[string]networkSpec),
	}

	networks, _, err := lookupTable(root, "networks", "")
	if err != nil {
		return nil, err
	}
	for name, raw := range networks {
		path := "networks." + name
		table, ok := asTable(raw)
		if !ok {
			return nil, &domain.FieldError{Path: path, Reason: "must be a table"}
		}
		spec, err := parseNetwork(table, path)
		if err != nil {
			return nil, err
		}
		doc.Networks[name] = *spec
	}

	if doc.ContractsDirectory, _, err = lookupString(root, "contracts_directory", ""); err != nil {
		return nil, err
	}
	if doc.BuildDirectory, _, err = lookupString(root, "contracts_build_directory", ""); err != nil {
		return nil, err
	}

	compilers, _, err := lookupTable(root, "compilers", "")
	if err != nil {
		return nil, err
	}
	solc, _, err := lookupTable(compilers, "solc", "compilers")
	if err != nil {
		return nil, err
	}
	spec, err := parseSolc(solc, "compilers.solc")
	if err != nil {
		return nil, err
	}
	doc.Solc = *spec

	db, _, err := lookupTable(root, "db", "")
	if err != nil {
		return nil, err
	}
	if doc.DBEnabled, _, err = lookupBool(db, "enabled", "db"); err != nil {
		return nil, err
	}

	return doc, nil
}

// parseNetwork parses a single networks.<name> table
func parseNetwork(table map[string]any, path string) (*networkSpec, error) {
	spec := &networkSpec{}
	var err error

	if spec.Host, _, err = lookupString(table, "host", path); err != nil {
		return nil, err
	}
	if spec.Port, _, err = lookupInt(table, "port", path); err != nil {
		return nil, err
	}

	// network_id is an integer, or "*" to accept whatever the node reports
	if raw, ok := table["network_id"]; ok {
		if s, isString := raw.(string); isString {
			switch {
			case s == "*":
				spec.AnyNetwork = true
			default:
				id, parseErr := strconv.ParseInt(s, 10, 64)
				if parseErr != nil {
					return nil, &domain.FieldError{Path: path + ".network_id", Value: s, Reason: `must be an integer or "*"`}
				}
				spec.NetworkID = id
			}
		} else if id, isInt := asInt(raw); isInt {
			spec.NetworkID = id
		} else {
			return nil, &domain.FieldError{Path: path + ".network_id", Value: raw, Reason: `must be an integer or "*"`}
		}
		if !spec.AnyNetwork && spec.NetworkID == 0 {
			return nil, &domain.FieldError{Path: path + ".network_id", Value: raw, Reason: networkIDReason}
		}
	}

	return spec, nil
}

// parseSolc parses the compilers.solc table
func parseSolc(table map[string]any, path string) (*solcSpec, error) {
	spec := &solcSpec{}
	var err error

	if spec.Version, _, err = lookupString(table, "version", path); err != nil {
		return nil, err
	}
	if spec.EVMVersion, _, err = lookupString(table, "evmVersion", path); err != nil {
		return nil, err
	}

	optimizer, _, err := lookupTable(table, "optimizer", path)
	if err != nil {
		return nil, err
	}
	optimizerPath := path + ".optimizer"
	if spec.OptimizerEnabled, _, err = lookupBool(optimizer, "enabled", optimizerPath); err != nil {
		return nil, err
	}
	if spec.OptimizerRuns, spec.runsSet, err = lookupInt(optimizer, "runs", optimizerPath); err != nil {
		return nil, err
	}

	return spec, nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func lookupTable(table map[string]any, key, prefix string) (map[string]any, bool, error) {
	raw, ok := table[key]
	if !ok || raw == nil {
		return map[string]any{}, false, nil
	}
	t, ok := asTable(raw)
	if !ok {
		return nil, false, &domain.FieldError{Path: joinPath(prefix, key), Reason: "must be a table"}
	}
	return t, true, nil
}

func lookupString(table map[string]any, key, prefix string) (string, bool, error) {
	raw, ok := table[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, &domain.FieldError{Path: joinPath(prefix, key), Value: raw, Reason: "must be a string"}
	}
	return s, true, nil
}

func lookupInt(table map[string]any, key, prefix string) (int64, bool, error) {
	raw, ok := table[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	n, ok := asInt(raw)
	if !ok {
		return 0, false, &domain.FieldError{Path: joinPath(prefix, key), Value: raw, Reason: "must be an integer"}
	}
	return n, true, nil
}

func lookupBool(table map[string]any, key, prefix string) (bool, bool, error) {
	raw, ok := table[key]
	if !ok || raw == nil {
		return false, false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, false, &domain.FieldError{Path: joinPath(prefix, key), Value: raw, Reason: "must be a boolean"}
	}
	return b, true, nil
}

// asTable accepts both string-keyed maps and the any-keyed maps yaml.v3
// produces for mappings with non-string keys
func asTable(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// asInt normalizes the integer representations of the three decoders. Float
// literals such as 7545.0 are rejected in every format.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

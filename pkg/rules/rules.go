// Package rules loads user-declared organization rules from YAML or JSON
// and matches files against them with first-match-wins semantics.
package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"fileorg/pkg/operation"
)

// Fatal load failures. Individually invalid rules never trigger these; they
// are collected as warnings instead.
var (
	ErrRulesNotFound = errors.New("rules file not found")
	ErrBadFormat     = errors.New("rules file cannot be parsed")
	ErrBadStructure  = errors.New("rules file must contain a 'rules' list")
)

// regexPrefix marks a pattern as a regular expression rather than a glob.
const regexPrefix = "regex:"

// Rule is a user-declared custom-organization directive. Lower priority
// numbers match first; ties keep declaration order.
type Rule struct {
	Name        string
	Pattern     string
	Destination string
	Priority    int
}

// LoadResult carries the accepted rules plus the reasons each rejected rule
// was dropped, letting the caller decide how to surface them.
type LoadResult struct {
	Rules    []Rule
	Warnings []string
}

// Load reads a rules configuration file. The format is chosen by extension:
// .yaml/.yml or .json. Fatal errors are a missing file, an unparsable
// document, a top level that is not a mapping with a 'rules' list, or an
// unsupported extension. Rules failing record or regex validation are
// dropped with a warning; the remaining valid rules are still returned.
func Load(configPath string) (LoadResult, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadResult{}, fmt.Errorf("%w: %s", ErrRulesNotFound, configPath)
		}
		return LoadResult{}, fmt.Errorf("read rules file: %w", err)
	}

	records, err := decode(configPath, content)
	if err != nil {
		return LoadResult{}, err
	}

	var result LoadResult
	for i, record := range records {
		rule, validateErr := parseRecord(record, i)
		if validateErr != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("rule %d: %v", i, validateErr))
			continue
		}
		result.Rules = append(result.Rules, rule)
	}

	return result, nil
}

// decode parses the document and enforces the top-level structure: a mapping
// with a sequence bound to 'rules'. Individual records are returned raw so
// that a malformed record costs a warning, not the whole load.
func decode(configPath string, content []byte) ([]any, error) {
	var parse func([]byte, any) error

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		parse = func(b []byte, v any) error { return yaml.Unmarshal(b, v) }
	case ".json":
		parse = json.Unmarshal
	default:
		return nil, fmt.Errorf("%w: unsupported format %q, use .yaml, .yml, or .json",
			ErrBadFormat, filepath.Ext(configPath))
	}

	var raw any
	if err := parse(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrBadStructure
	}

	rulesVal, ok := mapping["rules"]
	if !ok {
		return nil, ErrBadStructure
	}

	records, ok := rulesVal.([]any)
	if !ok {
		return nil, ErrBadStructure
	}

	return records, nil
}

// parseRecord validates a single raw rule record. A missing priority
// defaults to the record's index in the sequence.
func parseRecord(record any, index int) (Rule, error) {
	fields, ok := record.(map[string]any)
	if !ok {
		return Rule{}, fmt.Errorf("rule must be a mapping, got %T", record)
	}

	name, err := stringField(fields, "name")
	if err != nil {
		return Rule{}, err
	}
	pattern, err := stringField(fields, "pattern")
	if err != nil {
		return Rule{}, err
	}
	destination, err := stringField(fields, "destination")
	if err != nil {
		return Rule{}, err
	}

	priority := index
	if rawPriority, present := fields["priority"]; present {
		priority, err = intValue(rawPriority)
		if err != nil {
			return Rule{}, errors.New("'priority' must be an integer")
		}
	}

	if strings.HasPrefix(pattern, regexPrefix) {
		if _, compileErr := regexp.Compile(strings.TrimPrefix(pattern, regexPrefix)); compileErr != nil {
			return Rule{}, fmt.Errorf("invalid regex pattern: %v", compileErr)
		}
	}

	return Rule{
		Name:        name,
		Pattern:     pattern,
		Destination: destination,
		Priority:    priority,
	}, nil
}

func stringField(fields map[string]any, key string) (string, error) {
	raw, present := fields[key]
	if !present {
		return "", fmt.Errorf("missing required field: %s", key)
	}

	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("'%s' must be a non-empty string", key)
	}

	return s, nil
}

// intValue accepts the integer representations both decoders produce: YAML
// yields int, JSON yields float64.
func intValue(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.New("not an integer")
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("not an integer: %T", raw)
	}
}

// Match reports whether the file's bare filename matches the rule's pattern.
// A regex: pattern is searched unanchored; a pattern that fails to compile
// at match time simply does not match. Anything else is a shell glob.
func Match(file string, rule Rule) bool {
	filename := filepath.Base(file)

	if strings.HasPrefix(rule.Pattern, regexPrefix) {
		re, err := regexp.Compile(strings.TrimPrefix(rule.Pattern, regexPrefix))
		if err != nil {
			return false
		}
		return re.MatchString(filename)
	}

	matched, err := filepath.Match(rule.Pattern, filename)
	if err != nil {
		return false
	}
	return matched
}

// Apply routes each file to its highest-priority matching rule, producing
// one operation per matched file with destination
// targetDir/{rule.destination}/{filename}. First match wins: a matched file
// is never reconsidered, and files matching no rule are silently excluded.
func Apply(files []string, ruleSet []Rule, targetDir string) []operation.Operation {
	sorted := make([]Rule, len(ruleSet))
	copy(sorted, ruleSet)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	var ops []operation.Operation
	matched := make(map[string]bool)

	for _, file := range files {
		if matched[file] {
			continue
		}

		for _, rule := range sorted {
			if !Match(file, rule) {
				continue
			}

			dest := filepath.Join(targetDir, rule.Destination, filepath.Base(file))
			ops = append(ops, operation.New(operation.KindCustom, file, dest))
			matched[file] = true
			break
		}
	}

	return ops
}

package dsl

import (
	"regexp"
	"sort"
	"strings"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/i18n"
)

// RecordChecker matches map[string]any values against a key-by-key
// description. Keys are classified by prefix:
//
//	"key" / "!key"  required
//	"?key"          optional
//	"~pattern"      every actual key matching pattern (unanchored search)
//	                that is not claimed by an exact key
//
// Keys covered by no rule pass through to the result unchecked and
// unmodified. An empty description accepts any mapping and copies it.
//
// When several patterns match the same key, patterns are applied in
// lexicographic order of their source text and the first match wins.
type RecordChecker struct {
	fields   map[string]recordField
	patterns []recordPattern
}

type recordField struct {
	desc     typegraph.Descriptor
	optional bool
}

type recordPattern struct {
	src  string
	re   *regexp.Regexp
	desc typegraph.Descriptor
}

// NewRecord returns an unbound record checker for deferred binding.
func NewRecord() *RecordChecker { return &RecordChecker{} }

// Record binds a record checker, panicking on a malformed description
// (duplicate keys or an invalid pattern). Use NewRecord().Bind for the
// error form.
func Record(fields map[string]typegraph.Descriptor) *RecordChecker {
	c := NewRecord()
	if err := c.Bind(fields); err != nil {
		panic(err)
	}
	return c
}

// Bind compiles the description. Regexp patterns are compiled eagerly and a
// key appearing both bare and prefixed is rejected, so malformed
// descriptions surface here rather than at first check.
func (c *RecordChecker) Bind(fields map[string]typegraph.Descriptor) error {
	cfields := make(map[string]recordField)
	var patterns []recordPattern
	for k, d := range fields {
		switch {
		case strings.HasPrefix(k, "~"):
			re, err := regexp.Compile(k[1:])
			if err != nil {
				return typegraph.NewInvalidDescriptor(c, "bad key pattern "+k[1:]+": "+err.Error())
			}
			patterns = append(patterns, recordPattern{src: k[1:], re: re, desc: d})
		case strings.HasPrefix(k, "?"):
			if err := addRecordField(cfields, c, k[1:], d, true); err != nil {
				return err
			}
		case strings.HasPrefix(k, "!"):
			if err := addRecordField(cfields, c, k[1:], d, false); err != nil {
				return err
			}
		default:
			if err := addRecordField(cfields, c, k, d, false); err != nil {
				return err
			}
		}
	}
	sort.Slice(patterns, func(i, j int) bool { return patterns[i].src < patterns[j].src })
	c.fields = cfields
	c.patterns = patterns
	return nil
}

func addRecordField(fields map[string]recordField, c *RecordChecker, key string, d typegraph.Descriptor, optional bool) error {
	if _, dup := fields[key]; dup {
		return typegraph.NewInvalidDescriptor(c, "key '"+key+"' is described more than once")
	}
	fields[key] = recordField{desc: d, optional: optional}
	return nil
}

// PreCheck gates on the mapping kind and allocates the result shell.
func (c *RecordChecker) PreCheck(value any) (any, error) {
	if _, ok := value.(map[string]any); !ok {
		return nil, typegraph.NewMismatch(value, c, typegraph.CodeInvalidType, "expected a mapping")
	}
	return map[string]any{}, nil
}

func (c *RecordChecker) FinalCheck(value, shell any, recurse typegraph.RecurseFunc) (any, error) {
	out := shell.(map[string]any)
	m := value.(map[string]any)
	if len(c.fields) == 0 && len(c.patterns) == 0 {
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	}
	for k, f := range c.fields {
		if f.optional {
			continue
		}
		if _, ok := m[k]; !ok {
			return nil, typegraph.NewMismatch(value, c, typegraph.CodeRequired,
				i18n.T(typegraph.CodeRequired, map[string]string{"key": k}))
		}
	}
	for k, v := range m {
		if f, ok := c.fields[k]; ok {
			r, err := recurse(v, f.desc)
			if err != nil {
				return nil, err
			}
			out[k] = r
			continue
		}
		matched := false
		for _, p := range c.patterns {
			if p.re.MatchString(k) {
				r, err := recurse(v, p.desc)
				if err != nil {
					return nil, err
				}
				out[k] = r
				matched = true
				break
			}
		}
		if !matched {
			out[k] = v
		}
	}
	return out, nil
}

func (c *RecordChecker) String() string {
	keys := make([]string, 0, len(c.fields)+len(c.patterns))
	for k, f := range c.fields {
		if f.optional {
			k = "?" + k
		}
		keys = append(keys, k)
	}
	for _, p := range c.patterns {
		keys = append(keys, "~"+p.src)
	}
	sort.Strings(keys)
	return "record{" + strings.Join(keys, ", ") + "}"
}

func (c *RecordChecker) shallowName() string { return "record" }

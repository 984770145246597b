package dictify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/dts-format/ir"
	"github.com/signadot/dts-format/parse"
)

// ErrRecord reports a record document which does not have the expected
// shape.
var ErrRecord = fmt.Errorf("%w: bad record", ir.ErrParse)

// ToTree rebuilds a tree from its record form.
func ToTree(doc yaml.MapSlice) (*ir.Tree, error) {
	t := ir.NewTree("")
	for _, it := range doc {
		key := fmt.Sprint(it.Key)
		var err error
		switch key {
		case KeyFilename:
			t.Filename = scalar(it.Value)
		case KeyVersion:
			t.Version, err = strconv.Atoi(scalar(it.Value))
		case KeyIncludes:
			t.Includes, err = strs(key, it.Value)
		case KeyDefines:
			err = eachItem(key, it.Value, func(k string, v any) error {
				t.SetDefine(k, scalar(v))
				return nil
			})
		case KeyDirectives:
			err = eachEntry(key, it.Value, func(k string, v any) error {
				t.Directives = append(t.Directives, ir.Directive{Tag: k, Value: scalar(v)})
				return nil
			})
		case KeyNodes:
			err = eachItem(key, it.Value, func(k string, v any) error {
				return topNode(t, k, v)
			})
		default:
			err = fmt.Errorf("%w: unknown key %q", ErrRecord, key)
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

func topNode(t *ir.Tree, key string, v any) error {
	rec, err := mapping(key, v)
	if err != nil {
		return err
	}
	sig, err := signature(key, rec)
	if err != nil {
		return err
	}
	n := t.Lookup(&sig)
	if n == nil {
		var parent *ir.Node
		if sig.Ref == "" {
			parent = t.Root()
		}
		if n, err = t.NewNode(parent, sig); err != nil {
			return fmt.Errorf("node %q: %w", key, err)
		}
	} else {
		n.AddLabels(sig.Labels...)
	}
	return fill(n, rec)
}

// fill sets the directives, properties and children of a record on n.
func fill(top *ir.Node, topRec yaml.MapSlice) error {
	type item struct {
		node *ir.Node
		rec  yaml.MapSlice
	}
	work := []item{{top, topRec}}
	for len(work) != 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]
		n := it.node
		for _, f := range it.rec {
			key := fmt.Sprint(f.Key)
			var err error
			switch key {
			case KeySignature, KeyNodeName, KeyLabels, KeyRef, KeyUnitAddress:
			case KeyInclude, KeyDeleteNode, KeyDeleteProperty:
				err = directives(n, key, f.Value)
			case KeyIncludes:
				var files []string
				files, err = strs(key, f.Value)
				for _, x := range files {
					n.AddCppInclude(x)
				}
			case KeyProperties:
				err = eachItem(key, f.Value, func(k string, v any) error {
					p, err := ir.NewFromValue(k, v)
					if err != nil {
						return fmt.Errorf("%s: %w", n.Path(), err)
					}
					n.SetProperty(p)
					return nil
				})
			case KeyChildren:
				err = eachItem(key, f.Value, func(k string, v any) error {
					rec, err := mapping(k, v)
					if err != nil {
						return err
					}
					sig, err := signature(k, rec)
					if err != nil {
						return err
					}
					if sig.Ref != "" {
						return fmt.Errorf("%w: %s: &%s", parse.ErrChildRef, n.Path(), sig.Ref)
					}
					c := n.FindChild(sig.Name, sig.Address)
					if c == nil {
						if c, err = n.Tree().NewNode(n, sig); err != nil {
							return fmt.Errorf("%s: child %q: %w", n.Path(), k, err)
						}
					} else {
						c.AddLabels(sig.Labels...)
					}
					work = append(work, item{c, rec})
					return nil
				})
			default:
				err = fmt.Errorf("%w: %s: unknown key %q", ErrRecord, n.Path(), key)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func directives(n *ir.Node, key string, v any) error {
	vs, err := strs(key, v)
	if err != nil {
		return err
	}
	tag := strings.ReplaceAll(strings.TrimPrefix(key, "dtc_"), "_", "-")
	for _, x := range vs {
		if err := n.AddDirective(tag, x); err != nil {
			return err
		}
	}
	return nil
}

// signature reads the signature of a record: the signature key, else the
// individual fields, else the record's key.
func signature(key string, rec yaml.MapSlice) (ir.Signature, error) {
	fields := map[string]any{}
	for _, it := range rec {
		fields[fmt.Sprint(it.Key)] = it.Value
	}
	if v, ok := fields[KeySignature]; ok {
		return parse.ParseSignature(scalar(v))
	}
	_, hasName := fields[KeyNodeName]
	_, hasRef := fields[KeyRef]
	if !hasName && !hasRef {
		return parse.ParseSignature(key)
	}
	sig := ir.Signature{
		Name: scalar(fields[KeyNodeName]),
		Ref:  scalar(fields[KeyRef]),
	}
	if v, ok := fields[KeyLabels]; ok {
		labels, err := strs(KeyLabels, v)
		if err != nil {
			return ir.Signature{}, err
		}
		sig.AddLabels(labels...)
	}
	if v, ok := fields[KeyUnitAddress]; ok && v != nil {
		sig.Address = ir.ParseUnitAddress(scalar(v))
	}
	return sig, sig.Validate()
}

func mapping(key string, v any) (yaml.MapSlice, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		return x, nil
	case nil:
		return yaml.MapSlice{}, nil
	}
	return nil, fmt.Errorf("%w: %q is %T, not a mapping", ErrRecord, key, v)
}

func eachItem(key string, v any, f func(k string, v any) error) error {
	m, err := mapping(key, v)
	if err != nil {
		return err
	}
	for _, it := range m {
		if err := f(fmt.Sprint(it.Key), it.Value); err != nil {
			return err
		}
	}
	return nil
}

// eachEntry is eachItem for a sequence of single entry mappings, where
// keys may repeat.  A plain mapping is accepted too.
func eachEntry(key string, v any, f func(k string, v any) error) error {
	xs, ok := v.([]any)
	if !ok {
		return eachItem(key, v, f)
	}
	for i, x := range xs {
		m, err := mapping(fmt.Sprintf("%s[%d]", key, i), x)
		if err != nil {
			return err
		}
		if len(m) != 1 {
			return fmt.Errorf("%w: %s[%d] has %d entries, want 1", ErrRecord, key, i, len(m))
		}
		if err := f(fmt.Sprint(m[0].Key), m[0].Value); err != nil {
			return err
		}
	}
	return nil
}

func strs(key string, v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []any:
		res := make([]string, len(x))
		for i, e := range x {
			res[i] = scalar(e)
		}
		return res, nil
	case []string:
		return x, nil
	case string:
		return []string{x}, nil
	}
	return nil, fmt.Errorf("%w: %q is %T, not a list", ErrRecord, key, v)
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

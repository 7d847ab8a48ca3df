package pricing

import (
	"bytes"
	"encoding/json"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

type record interface {
	RecordID() string
}

// collection is an insertion-ordered set of records keyed by id.
// It is never modified in place; every change returns a copy.
type collection[T record] struct {
	order []string
	byID  map[string]T
}

func newCollection[T record](items ...T) collection[T] {
	c := collection[T]{
		order: make([]string, 0, len(items)),
		byID:  make(map[string]T, len(items)),
	}

	for _, item := range items {
		if _, ok := c.byID[item.RecordID()]; ok {
			continue
		}

		c.order = append(c.order, item.RecordID())
		c.byID[item.RecordID()] = item
	}

	return c
}

func (c collection[T]) clone() collection[T] {
	out := collection[T]{
		order: make([]string, len(c.order)),
		byID:  make(map[string]T, len(c.byID)),
	}

	copy(out.order, c.order)

	for k, v := range c.byID {
		out.byID[k] = v
	}

	return out
}

func (c collection[T]) get(id string) (T, bool) {
	item, ok := c.byID[id]

	return item, ok
}

func (c collection[T]) items() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}

	return out
}

func (c collection[T]) len() int {
	return len(c.order)
}

func (c collection[T]) appended(item T) collection[T] {
	out := c.clone()
	out.order = append(out.order, item.RecordID())
	out.byID[item.RecordID()] = item

	return out
}

func (c collection[T]) replaced(item T) collection[T] {
	out := c.clone()
	out.byID[item.RecordID()] = item

	return out
}

func (c collection[T]) without(id string) collection[T] {
	out := c.clone()
	delete(out.byID, id)

	for i, oid := range out.order {
		if oid == id {
			out.order = append(out.order[:i], out.order[i+1:]...)

			break
		}
	}

	return out
}

// immutableFields cannot be changed through a field update.
var immutableFields = map[string]struct{}{
	"id":   {},
	"kind": {},
}

// patchField replaces one JSON field of rec with value. It reports false
// when the field is unknown or immutable, and when the value does not fit
// its type. Non-finite amounts render as null in the document, so the ones
// not being replaced are copied back from rec after decoding.
func patchField[T any, P interface {
	*T
	amounts
}](rec T, field string, value any) (T, bool) {
	var zero T

	if field == "" || strings.ContainsAny(field, "/~") {
		return zero, false
	}

	if _, ok := immutableFields[field]; ok {
		return zero, false
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return zero, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return zero, false
	}

	if _, ok := fields[field]; !ok {
		return zero, false
	}

	ops, err := json.Marshal([]map[string]any{
		{"op": "add", "path": "/" + field, "value": value},
	})
	if err != nil {
		return zero, false
	}

	patch, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return zero, false
	}

	patched, err := patch.Apply(doc)
	if err != nil {
		return zero, false
	}

	var out T

	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&out); err != nil {
		return zero, false
	}

	kept := P(&rec).amounts()
	for name, amount := range P(&out).amounts() {
		if name != field && !finite(*kept[name]) {
			*amount = *kept[name]
		}
	}

	return out, true
}

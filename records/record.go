package records

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Record is one user record: the raw JSON object exactly as it appears in the
// source document.
type Record []byte

// Collection is an ordered record set
type Collection []Record

// Fields returns the record for ordered traversal
func (r Record) Fields() gjson.Result {
	return gjson.ParseBytes(r)
}

// ID returns the numeric id field. ok is false when id is absent or not a number.
func (r Record) ID() (float64, bool) {
	v := gjson.GetBytes(r, "id")
	if v.Type != gjson.Number {
		return 0, false
	}
	return v.Num, true
}

// MarshalJSON writes the record unchanged: field order, number text and
// string escapes are those of the source document.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// ParseCollection parses a JSON array of objects. Objects repeating a key, at
// any depth, are rejected so every representation sees one value per key.
func ParseCollection(data []byte) (Collection, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errors.New("expected a JSON array of records")
	}
	var (
		out    = Collection{}
		badIdx = -1
		i      int
		dupKey string
		dup    bool
	)
	root.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			badIdx = i
			return false
		}
		if dupKey, dup = duplicateKey(v); dup {
			badIdx = i
			return false
		}
		out = append(out, Record(v.Raw))
		i++
		return true
	})
	switch {
	case dup:
		return nil, fmt.Errorf("record %d has duplicate key %q", badIdx, dupKey)
	case badIdx >= 0:
		return nil, fmt.Errorf("record %d is not a JSON object", badIdx)
	}
	return out, nil
}

// duplicateKey returns the first key that occurs twice in the same object,
// searching nested objects and arrays.
func duplicateKey(v gjson.Result) (string, bool) {
	var (
		dup   string
		found bool
	)
	switch {
	case v.IsObject():
		seen := map[string]struct{}{}
		v.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if _, ok := seen[k]; ok {
				dup, found = k, true
				return false
			}
			seen[k] = struct{}{}
			dup, found = duplicateKey(value)
			return !found
		})
	case v.IsArray():
		v.ForEach(func(_, item gjson.Result) bool {
			dup, found = duplicateKey(item)
			return !found
		})
	}
	return dup, found
}

// Find returns the first record whose id equals id
func (c Collection) Find(id int64) (Record, bool) {
	want := float64(id)
	for _, r := range c {
		if got, ok := r.ID(); ok && got == want {
			return r, true
		}
	}
	return nil, false
}

package descriptor

import (
	"bytes"
	"errors"
	"io"

	gojson "github.com/goccy/go-json"

	ts "github.com/reoring/tableschema"
	"github.com/reoring/tableschema/i18n"
)

type dupFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
	path         ts.PathRef
}

// duplicateKeys reports every object key repeated within the same object of
// a JSON document. Decoding into structs would silently keep the last one.
func duplicateKeys(data []byte) (ts.Issues, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		stack []dupFrame
		iss   ts.Issues
	)
	// value returns the path of the value about to start and advances the
	// enclosing container.
	value := func() ts.PathRef {
		if len(stack) == 0 {
			return ts.Root()
		}
		top := &stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
			return top.path.Field(top.key)
		}
		p := top.path.Index(top.index)
		top.index++
		return p
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return iss, nil
		}
		if err != nil {
			return iss, err
		}
		switch v := tok.(type) {
		case gojson.Delim:
			switch v {
			case '{', '[':
				p := value()
				stack = append(stack, dupFrame{
					object:       v == '{',
					keys:         map[string]struct{}{},
					expectingKey: v == '{',
					path:         p,
				})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
			continue
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.object && top.expectingKey {
					if _, dup := top.keys[v]; dup {
						iss = append(iss, top.path.Field(v).Issue(ts.CodeDuplicateKey,
							i18n.T(ts.CodeDuplicateKey, map[string]string{"key": v}), "key", v))
					}
					top.keys[v] = struct{}{}
					top.key = v
					top.expectingKey = false
					continue
				}
			}
		}
		value()
	}
}

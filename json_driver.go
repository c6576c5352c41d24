package tableschema

import (
	"encoding/json"
	"sync"

	gojson "github.com/goccy/go-json"
)

// JSONDriver decodes and encodes the JSON fragments found in object, array
// and geopoint cells. The default implementation is backed by goccy/go-json
// and may be swapped with SetJSONDriver.
type JSONDriver interface {
	Unmarshal(data []byte, v any) error
	Marshal(v any) ([]byte, error)
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the go-json backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = goJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the active driver.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// StdJSONDriver returns a driver backed by encoding/json.
func StdJSONDriver() JSONDriver { return stdJSONDriver{} }

type goJSONDriver struct{}

func (goJSONDriver) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (goJSONDriver) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (goJSONDriver) Name() string                       { return "go-json" }

type stdJSONDriver struct{}

func (stdJSONDriver) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (stdJSONDriver) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (stdJSONDriver) Name() string                       { return "encoding/json" }

// decodeJSON parses a generic JSON document.
func decodeJSON(s string) (any, error) {
	var v any
	if err := CurrentJSONDriver().Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

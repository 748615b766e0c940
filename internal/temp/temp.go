// Package temp provides temperature readings with source abstraction.
// Source ids are filesystem paths by default; ids with an "mqtt:" prefix
// are served from broker topics instead.
package temp

import (
	"fmt"
	"strings"
)

const mqttPrefix = "mqtt:"

// Router dispatches reads by source id prefix.
type Router struct {
	files  FileSource
	broker *MQTTSource
}

// NewRouter creates a router. broker may be nil, in which case every
// read of an "mqtt:" id fails.
func NewRouter(broker *MQTTSource) *Router {
	return &Router{broker: broker}
}

// Read resolves the source id and returns a reading in degrees Celsius.
func (r *Router) Read(id string) (float64, error) {
	if strings.HasPrefix(id, mqttPrefix) {
		if r.broker == nil {
			return 0, fmt.Errorf("source %q needs a broker, none configured", id)
		}
		return r.broker.Read(strings.TrimPrefix(id, mqttPrefix))
	}
	return r.files.Read(id)
}

// Package config loads pin descriptors from JSON or YAML files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/sweeney/tempmon/internal/logic"
)

// ErrNoPins reports a configuration that parsed cleanly but contains
// zero pin descriptors.
var ErrNoPins = errors.New("config: no pin descriptors")

// pinJSON mirrors one descriptor in the configuration file.
type pinJSON struct {
	Pin              int     `json:"wpi_pin"`
	OutputVal        bool    `json:"output_val"`
	Condition        string  `json:"condition"`
	TemperatureDegC  float64 `json:"temperature_degC"`
	TemperatureSrc   string  `json:"temperature_src"`
	MatchOnTerminate bool    `json:"match_on_terminate"`
}

// Load reads pin descriptors from path. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON. Field values are not
// validated here: an unknown operator or unresolvable source leaves
// that pin inert at runtime rather than failing startup.
func Load(path string) ([]logic.PinConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	var pins []pinJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &pins)
	default:
		err = json.Unmarshal(data, &pins)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(pins) == 0 {
		return nil, ErrNoPins
	}

	cfgs := make([]logic.PinConfig, 0, len(pins))
	for _, p := range pins {
		cfgs = append(cfgs, logic.PinConfig{
			Pin:              p.Pin,
			Level:            p.OutputVal,
			Op:               logic.Op(p.Condition),
			Threshold:        p.TemperatureDegC,
			Source:           p.TemperatureSrc,
			MatchOnTerminate: p.MatchOnTerminate,
		})
	}
	return cfgs, nil
}

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/simsync/host"
	"github.com/sarchlab/simsync/variable"
)

// Scenario scripts a session: what the host holds, what the session
// registers, and what happens on each frame.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Prefix      string        `yaml:"prefix,omitempty"`
	FrameRate   float64       `yaml:"frame_rate,omitempty"`
	Frames      uint64        `yaml:"frames"`
	Host        HostSetup     `yaml:"host,omitempty"`
	Variables   []VarSpec     `yaml:"variables,omitempty"`
	Events      []EventSpec   `yaml:"events,omitempty"`
	KeyEvents   []uint32      `yaml:"key_events,omitempty"`
	Steps       []FrameAction `yaml:"steps,omitempty"`
}

// HostSetup holds the host values before the first frame.
type HostSetup struct {
	Named    map[string]float64 `yaml:"named,omitempty"`
	Aircraft []AircraftValue    `yaml:"aircraft,omitempty"`
}

// AircraftValue is the value of an indexed aircraft variable.
type AircraftValue struct {
	Name  string  `yaml:"name"`
	Index int     `yaml:"index,omitempty"`
	Value float64 `yaml:"value"`
}

// VarSpec declares a scalar variable of the session.
type VarSpec struct {
	Name        string  `yaml:"name"`
	Kind        string  `yaml:"kind"`
	Index       int     `yaml:"index,omitempty"`
	Unit        string  `yaml:"unit,omitempty"`
	Mode        string  `yaml:"mode,omitempty"`
	Setter      string  `yaml:"setter,omitempty"`
	MaxAgeTime  float64 `yaml:"max_age_time,omitempty"`
	MaxAgeTicks uint64  `yaml:"max_age_ticks,omitempty"`
}

// EventSpec declares an event the session listens to.
type EventSpec struct {
	Name string `yaml:"name"`
	Mask bool   `yaml:"mask,omitempty"`
}

// FrameAction is what happens on one frame. Host-side changes land before
// the frame, local writes and triggers during its update phase.
type FrameAction struct {
	Frame     uint64             `yaml:"frame"`
	HoldTime  bool               `yaml:"hold_time,omitempty"`
	Named     map[string]float64 `yaml:"named,omitempty"`
	Aircraft  []AircraftValue    `yaml:"aircraft,omitempty"`
	Fire      []EventFire        `yaml:"fire,omitempty"`
	Pause     *uint32            `yaml:"pause,omitempty"`
	Keys      []KeyPress         `yaml:"keys,omitempty"`
	Exception *ExceptionSpec     `yaml:"exception,omitempty"`
	Set       []LocalWrite       `yaml:"set,omitempty"`
	Trigger   []EventFire        `yaml:"trigger,omitempty"`
	SendKeys  []KeyPress         `yaml:"send_keys,omitempty"`
}

// EventFire raises an event with up to five parameters.
type EventFire struct {
	Event string   `yaml:"event"`
	Data  []uint32 `yaml:"data,omitempty"`
}

// KeyPress is a key event with up to five parameters.
type KeyPress struct {
	ID     uint32   `yaml:"id"`
	Params []uint32 `yaml:"params,omitempty"`
}

// ExceptionSpec is an exception the host reports.
type ExceptionSpec struct {
	Name   string `yaml:"name"`
	SendID uint32 `yaml:"send_id,omitempty"`
	Index  uint32 `yaml:"index,omitempty"`
}

// LocalWrite sets a variable. Flush writes it to the host right away.
type LocalWrite struct {
	Var   string  `yaml:"var"`
	Value float64 `yaml:"value"`
	Flush bool    `yaml:"flush,omitempty"`
}

// LoadScenario reads and checks a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read scenario: %w", err)
	}

	return ParseScenario(data)
}

// ParseScenario decodes and checks a scenario. Unknown keys are errors.
func ParseScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	sc := &Scenario{}
	if err := dec.Decode(sc); err != nil {
		return nil, fmt.Errorf("cannot parse scenario: %w", err)
	}

	if sc.FrameRate == 0 {
		sc.FrameRate = 60
	}

	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", sc.Name, err)
	}

	return sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}

	if sc.Frames == 0 {
		return fmt.Errorf("frames must be positive")
	}

	if sc.FrameRate < 0 {
		return fmt.Errorf("frame_rate must be positive")
	}

	vars := make(map[string]bool)
	for _, v := range sc.Variables {
		if err := v.validate(); err != nil {
			return err
		}

		vars[v.Name] = true
	}

	events := make(map[string]bool)
	for _, e := range sc.Events {
		events[e.Name] = true
	}

	for _, step := range sc.Steps {
		if step.Frame >= sc.Frames {
			return fmt.Errorf("step for frame %d is after the last frame", step.Frame)
		}

		if step.Exception != nil {
			if _, ok := host.LookupException(step.Exception.Name); !ok {
				return fmt.Errorf("unknown exception %q", step.Exception.Name)
			}
		}

		for _, w := range step.Set {
			if !vars[w.Var] {
				return fmt.Errorf("frame %d sets undeclared variable %q", step.Frame, w.Var)
			}
		}

		for _, t := range step.Trigger {
			if !events[t.Event] {
				return fmt.Errorf("frame %d triggers undeclared event %q", step.Frame, t.Event)
			}
		}
	}

	return nil
}

func (v VarSpec) validate() error {
	if v.Name == "" {
		return fmt.Errorf("variable without name")
	}

	if v.Kind != "named" && v.Kind != "indexed" {
		return fmt.Errorf("variable %q has unknown kind %q", v.Name, v.Kind)
	}

	if _, err := v.unit(); err != nil {
		return err
	}

	if _, err := v.mode(); err != nil {
		return err
	}

	if v.Kind == "named" && (v.Index != 0 || v.Setter != "") {
		return fmt.Errorf("named variable %q cannot have an index or a setter", v.Name)
	}

	return nil
}

func (v VarSpec) unit() (host.Unit, error) {
	if v.Unit == "" {
		return host.Number, nil
	}

	u, ok := host.LookupUnit(v.Unit)
	if !ok {
		return host.Unit{}, fmt.Errorf("variable %q has unknown unit %q", v.Name, v.Unit)
	}

	return u, nil
}

func (v VarSpec) mode() (variable.UpdateMode, error) {
	switch v.Mode {
	case "", "none":
		return variable.NoAutoUpdate, nil
	case "read":
		return variable.AutoRead, nil
	case "write":
		return variable.AutoWrite, nil
	case "read-write":
		return variable.AutoReadWrite, nil
	default:
		return 0, fmt.Errorf("variable %q has unknown mode %q", v.Name, v.Mode)
	}
}

func (sc *Scenario) stepsByFrame() map[uint64][]FrameAction {
	out := make(map[uint64][]FrameAction)
	for _, step := range sc.Steps {
		out[step.Frame] = append(out[step.Frame], step)
	}

	return out
}

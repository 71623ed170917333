package grid

import (
	"errors"
	"fmt"
	"math"
)

// Topology is the current line routing of the monitored segment.
type Topology string

const (
	TopologyNormal   Topology = "Normal-A/B"
	TopologyRerouted Topology = "Rerouted-B/A"
)

var topologies = [...]Topology{TopologyNormal, TopologyRerouted}

// Valid reports whether t is one of the known routings.
func (t Topology) Valid() bool {
	for _, known := range topologies {
		if t == known {
			return true
		}
	}
	return false
}

// Value domains accepted by Validate.
const (
	MinTemperature = 50
	MaxTemperature = 100
	MinHumidity    = 30
	MaxHumidity    = 100
	MinAgeScore    = 0
	MaxAgeScore    = 100
	MinLoad        = 0
	MaxLoad        = 100
	MinRenewableMW = 0
	MaxRenewableMW = 2000
	MinWeather     = 0.0
	MaxWeather     = 1.0
)

// SensorSnapshot is one complete set of readings at a point in time.
type SensorSnapshot struct {
	Temperature       int      `json:"temperature"`
	Humidity          int      `json:"humidity"`
	ComponentAgeScore int      `json:"component_age_score"`
	LoadPercentage    int      `json:"load_percentage"`
	FaultSignal       int      `json:"fault_signal"` // 0 | 1
	CurrentTopology   Topology `json:"current_topology"`
	RenewableInput    int      `json:"renewable_input"` // MW
	WeatherScore      float64  `json:"weather_score"`
}

// ErrOutOfRange is matched by every *OutOfRangeError.
var ErrOutOfRange = errors.New("sensor reading out of range")

// OutOfRangeError names the first snapshot field that violates its domain.
type OutOfRangeError struct {
	Field string
	Value any
	Want  string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s=%v out of range, want %s", e.Field, e.Value, e.Want)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

func intField(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &OutOfRangeError{Field: name, Value: v, Want: fmt.Sprintf("[%d,%d]", lo, hi)}
	}
	return nil
}

// Validate rejects any field outside its declared domain. Fields are checked
// in declaration order and the first violation is returned.
func (s SensorSnapshot) Validate() error {
	checks := []error{
		intField("temperature", s.Temperature, MinTemperature, MaxTemperature),
		intField("humidity", s.Humidity, MinHumidity, MaxHumidity),
		intField("component_age_score", s.ComponentAgeScore, MinAgeScore, MaxAgeScore),
		intField("load_percentage", s.LoadPercentage, MinLoad, MaxLoad),
		intField("fault_signal", s.FaultSignal, 0, 1),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if !s.CurrentTopology.Valid() {
		return &OutOfRangeError{
			Field: "current_topology",
			Value: string(s.CurrentTopology),
			Want:  fmt.Sprintf("one of %q, %q", TopologyNormal, TopologyRerouted),
		}
	}
	if err := intField("renewable_input", s.RenewableInput, MinRenewableMW, MaxRenewableMW); err != nil {
		return err
	}
	if math.IsNaN(s.WeatherScore) || s.WeatherScore < MinWeather || s.WeatherScore > MaxWeather {
		return &OutOfRangeError{Field: "weather_score", Value: s.WeatherScore, Want: "[0.0,1.0]"}
	}
	return nil
}

package grid

// RandomSource is the only source of randomness in the package.
// *math/rand/v2.Rand satisfies it. Implementations need not be safe for
// concurrent use; callers sharing one must serialize access.
type RandomSource interface {
	IntN(n int) int
	Float64() float64
}

// regime is the set of sub-ranges one generator mode draws from.
type regime struct {
	temperature [2]int
	humidity    [2]int
	ageScore    [2]int
	load        [2]int
	faultOdds   int // fault_signal is 1 with probability 1/faultOdds
}

var (
	criticalRegime = regime{
		temperature: [2]int{90, 100},
		humidity:    [2]int{80, 100},
		ageScore:    [2]int{70, 95},
		load:        [2]int{90, 100},
		faultOdds:   4,
	}
	nominalRegime = regime{
		temperature: [2]int{50, 85},
		humidity:    [2]int{30, 75},
		ageScore:    [2]int{10, 65},
		load:        [2]int{30, 85},
		faultOdds:   6,
	}
)

// Renewable input and weather severity are drawn from the same ranges in
// both regimes.
var (
	renewableRange = [2]int{500, 1500}
	weatherRange   = [2]float64{0.5, 0.95}
)

// Generate draws a synthetic snapshot. When critical is true every stressor
// comes from its stressed sub-range; otherwise from the nominal one.
func Generate(critical bool, rng RandomSource) SensorSnapshot {
	r := nominalRegime
	if critical {
		r = criticalRegime
	}

	s := SensorSnapshot{
		Temperature:       between(rng, r.temperature),
		Humidity:          between(rng, r.humidity),
		ComponentAgeScore: between(rng, r.ageScore),
		LoadPercentage:    between(rng, r.load),
	}
	if rng.IntN(r.faultOdds) == 0 {
		s.FaultSignal = 1
	}
	s.CurrentTopology = topologies[rng.IntN(len(topologies))]
	s.RenewableInput = between(rng, renewableRange)
	s.WeatherScore = weatherRange[0] + rng.Float64()*(weatherRange[1]-weatherRange[0])
	return s
}

// between returns an integer in the closed interval [bounds[0], bounds[1]].
func between(rng RandomSource, bounds [2]int) int {
	return bounds[0] + rng.IntN(bounds[1]-bounds[0]+1)
}

package grid

import (
	"math/rand/v2"
	"testing"
)

// scriptedSource returns IntN values from a script (modulo n) and records
// every n it was asked for.
type scriptedSource struct {
	ints  []int
	float float64
	asked []int
}

func (s *scriptedSource) IntN(n int) int {
	s.asked = append(s.asked, n)
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 { return s.float }

func inRange(v, lo, hi int) bool { return v >= lo && v <= hi }

func TestGenerate_CriticalDomain(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 5000; i++ {
		s := Generate(true, rng)
		if !inRange(s.Temperature, 90, 100) ||
			!inRange(s.Humidity, 80, 100) ||
			!inRange(s.ComponentAgeScore, 70, 95) ||
			!inRange(s.LoadPercentage, 90, 100) {
			t.Fatalf("critical snapshot outside stressed ranges: %+v", s)
		}
		if err := s.Validate(); err != nil {
			t.Fatalf("generated snapshot invalid: %v", err)
		}
	}
}

func TestGenerate_NominalDomain(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 5000; i++ {
		s := Generate(false, rng)
		if !inRange(s.Temperature, 50, 85) ||
			!inRange(s.Humidity, 30, 75) ||
			!inRange(s.ComponentAgeScore, 10, 65) ||
			!inRange(s.LoadPercentage, 30, 85) {
			t.Fatalf("nominal snapshot outside nominal ranges: %+v", s)
		}
		if !inRange(s.RenewableInput, 500, 1500) {
			t.Fatalf("renewable input %d outside [500,1500]", s.RenewableInput)
		}
		if s.WeatherScore < 0.5 || s.WeatherScore > 0.95 {
			t.Fatalf("weather score %v outside [0.5,0.95]", s.WeatherScore)
		}
		if s.FaultSignal != 0 && s.FaultSignal != 1 {
			t.Fatalf("fault signal %d not a flag", s.FaultSignal)
		}
		if !s.CurrentTopology.Valid() {
			t.Fatalf("unknown topology %q", s.CurrentTopology)
		}
	}
}

func TestGenerate_HitsRangeEdges(t *testing.T) {
	lo := &scriptedSource{float: 0}
	s := Generate(true, lo)
	if s.Temperature != 90 || s.Humidity != 80 || s.ComponentAgeScore != 70 || s.LoadPercentage != 90 {
		t.Fatalf("lower edges: %+v", s)
	}
	if s.RenewableInput != 500 || s.WeatherScore != 0.5 {
		t.Fatalf("lower renewable/weather edges: %+v", s)
	}

	hi := &scriptedSource{ints: []int{10, 20, 25, 10, 1, 1, 1000}, float: 0.999999}
	s = Generate(true, hi)
	if s.Temperature != 100 || s.Humidity != 100 || s.ComponentAgeScore != 95 || s.LoadPercentage != 100 {
		t.Fatalf("upper edges: %+v", s)
	}
	if s.RenewableInput != 1500 {
		t.Fatalf("upper renewable edge: %d", s.RenewableInput)
	}
	if s.CurrentTopology != TopologyRerouted {
		t.Fatalf("topology: got %q", s.CurrentTopology)
	}
}

func TestGenerate_FaultOdds(t *testing.T) {
	tests := []struct {
		critical bool
		wantOdds int
	}{
		{critical: true, wantOdds: 4},
		{critical: false, wantOdds: 6},
	}
	for _, tc := range tests {
		src := &scriptedSource{}
		s := Generate(tc.critical, src)
		// Draw order: temperature, humidity, age, load, fault, topology, renewable.
		if len(src.asked) != 7 {
			t.Fatalf("expected 7 integer draws, got %v", src.asked)
		}
		if src.asked[4] != tc.wantOdds {
			t.Fatalf("critical=%v: fault drawn from %d outcomes, want %d", tc.critical, src.asked[4], tc.wantOdds)
		}
		if src.asked[5] != 2 {
			t.Fatalf("topology drawn from %d outcomes, want 2", src.asked[5])
		}
		if s.FaultSignal != 1 {
			t.Fatalf("outcome 0 should raise the fault flag")
		}
	}
}

func TestGenerate_FaultFrequency(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	const n = 60000
	faults := map[bool]int{}
	for _, critical := range []bool{true, false} {
		for i := 0; i < n; i++ {
			faults[critical] += Generate(critical, rng).FaultSignal
		}
	}
	if got := float64(faults[true]) / n; got < 0.23 || got > 0.27 {
		t.Fatalf("critical fault rate %.3f, want ~0.25", got)
	}
	if got := float64(faults[false]) / n; got < 0.15 || got > 0.185 {
		t.Fatalf("nominal fault rate %.3f, want ~0.167", got)
	}
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	a := rand.New(rand.NewPCG(1, 2))
	b := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		critical := i%2 == 0
		if x, y := Generate(critical, a), Generate(critical, b); x != y {
			t.Fatalf("draw %d differs: %+v vs %+v", i, x, y)
		}
	}
}

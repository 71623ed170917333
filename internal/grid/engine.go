package grid

// Tier is the mutually exclusive classification of a snapshot.
type Tier string

const (
	TierNormal   Tier = "Normal"
	TierFault    Tier = "Fault"
	TierCritical Tier = "Critical"
)

// Variant distinguishes the message set within a tier. Only Normal has more
// than one; VariantLoaded is a display sub-case and never changes the tier.
type Variant string

const (
	VariantCalm     Variant = "calm"
	VariantLoaded   Variant = "loaded"
	VariantFault    Variant = "fault"
	VariantCritical Variant = "critical"
)

// Stress weights in tenths: 0.4*temperature + 0.3*humidity + 0.3*age.
const (
	weightTemperature = 4
	weightHumidity    = 3
	weightAge         = 3
)

// Thresholds driving the tier branches.
const (
	CriticalStressThreshold = 80.0
	LoadBalancingThreshold  = 80

	criticalStressTenths = 800
)

// Health labels derived from the tier.
const (
	HealthHealthy = "HEALTHY"
	HealthAlert   = "ALERT"
)

// Assessment is the decision taken for one snapshot together with the values
// the message templates interpolate.
type Assessment struct {
	Tier           Tier
	Variant        Variant
	StressIndex    float64
	LoadPercentage int
	RenewableInput int
}

// DecisionRecord is the full output of one evaluation.
type DecisionRecord struct {
	Tier                Tier    `json:"status_tier"`
	StressIndex         float64 `json:"stress_index"`
	FaultAlert          string  `json:"fault_alert"`
	SelfCareAction      string  `json:"self_care_action"`
	RerouteStatus       string  `json:"reroute_status"`
	FuturePrediction    string  `json:"future_prediction"`
	SustainabilityFocus string  `json:"sustainability_focus"`
}

// SystemHealth is HEALTHY for the Normal tier and ALERT otherwise.
func (r DecisionRecord) SystemHealth() string {
	if r.Tier == TierNormal {
		return HealthHealthy
	}
	return HealthAlert
}

// StressIndex returns 0.4*temperature + 0.3*humidity + 0.3*component_age_score.
// Load, fault, topology, renewable input and weather do not contribute.
func StressIndex(s SensorSnapshot) float64 {
	return float64(stressTenths(s)) / 10
}

// stressTenths keeps the weighted sum in integer tenths so the critical
// threshold comparison is exact.
func stressTenths(s SensorSnapshot) int {
	return weightTemperature*s.Temperature + weightHumidity*s.Humidity + weightAge*s.ComponentAgeScore
}

// Classify decides the tier for a valid snapshot. The first matching branch
// wins: critical stress, then a physical fault, then high load.
func Classify(s SensorSnapshot) (Assessment, error) {
	if err := s.Validate(); err != nil {
		return Assessment{}, err
	}

	a := Assessment{
		StressIndex:    StressIndex(s),
		LoadPercentage: s.LoadPercentage,
		RenewableInput: s.RenewableInput,
	}
	switch {
	case stressTenths(s) >= criticalStressTenths:
		a.Tier, a.Variant = TierCritical, VariantCritical
	case s.FaultSignal == 1:
		a.Tier, a.Variant = TierFault, VariantFault
	case s.LoadPercentage > LoadBalancingThreshold:
		a.Tier, a.Variant = TierNormal, VariantLoaded
	default:
		a.Tier, a.Variant = TierNormal, VariantCalm
	}
	return a, nil
}

// Evaluate classifies s and renders its messages. Identical snapshots always
// produce identical records.
func Evaluate(s SensorSnapshot) (DecisionRecord, error) {
	a, err := Classify(s)
	if err != nil {
		return DecisionRecord{}, err
	}
	m := Render(a)
	return DecisionRecord{
		Tier:                a.Tier,
		StressIndex:         a.StressIndex,
		FaultAlert:          m.FaultAlert,
		SelfCareAction:      m.SelfCareAction,
		RerouteStatus:       m.RerouteStatus,
		FuturePrediction:    m.FuturePrediction,
		SustainabilityFocus: m.SustainabilityFocus,
	}, nil
}

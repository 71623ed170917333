package grid

import "fmt"

// Messages are the five human-readable lines shown for a decision.
type Messages struct {
	FaultAlert          string
	SelfCareAction      string
	RerouteStatus       string
	FuturePrediction    string
	SustainabilityFocus string
}

// Lines shared by both Normal variants.
const (
	nominalFaultAlert = "No existing physical fault detected (Fault Sensor: Nominal)."
	nominalSelfCare   = "AI Prediction Model: Actively monitoring key stressors. Continuous refinement."
	nominalReroute    = "Current Flow: Line A is carrying 100% load. Line B is idle or supporting low load."
)

// Render turns an assessment into its message set. The stress index is
// always shown with one decimal place.
func Render(a Assessment) Messages {
	switch a.Variant {
	case VariantCritical:
		return Messages{
			FaultAlert:          fmt.Sprintf("MICRO-FAILURE PREDICTED: High stress index (%.1f). Failure likely in < 72 hours.", a.StressIndex),
			SelfCareAction:      "DYNAMIC REROUTING INITIATED: Computing least-disruptive power route.",
			RerouteStatus:       "GRID STABILITY MAINTAINED: Load transferred to Line B. Line A isolated for maintenance.",
			FuturePrediction:    fmt.Sprintf("Trend: CRITICAL. Stress index %.1f rising. Immediate risk if not isolated.", a.StressIndex),
			SustainabilityFocus: fmt.Sprintf("Action: Rerouting prioritizes %d MW from renewables.", a.RenewableInput),
		}
	case VariantFault:
		return Messages{
			FaultAlert:          "IMMEDIATE FAULT ALERT: Physical issue detected. AI isolating fault sector.",
			SelfCareAction:      "DAMAGE MITIGATION REROUTE: Emergency isolation activated.",
			RerouteStatus:       "EMERGENCY REROUTE: Power diverted; stability recovering.",
			FuturePrediction:    "Trend: INSTABILITY. Minor stress due to reroute. Further analysis required.",
			SustainabilityFocus: "Action: Efficiency loss detected; AI optimizing future routing.",
		}
	case VariantLoaded:
		return Messages{
			FaultAlert:          nominalFaultAlert,
			SelfCareAction:      nominalSelfCare,
			RerouteStatus:       nominalReroute,
			FuturePrediction:    fmt.Sprintf("Trend: RISING STRESS. Load %d%% expected to peak. Recommend proactive balancing.", a.LoadPercentage),
			SustainabilityFocus: fmt.Sprintf("Action: Load at %d%%. Shift 10%% of load to Line B for balancing and to prevent wastage.", a.LoadPercentage),
		}
	default:
		return Messages{
			FaultAlert:          nominalFaultAlert,
			SelfCareAction:      nominalSelfCare,
			RerouteStatus:       nominalReroute,
			FuturePrediction:    fmt.Sprintf("Trend: STABLE. Stress Index (%.1f) nominal. Stable next 24 hrs.", a.StressIndex),
			SustainabilityFocus: fmt.Sprintf("Action: MAXIMIZE RENEWABLES. Routing %d MW clean.", a.RenewableInput),
		}
	}
}

package model

// Action is a human-friendly storage operating mode for one hour.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

func ActionFromFlows(chargeKW, dischargeKW float64) Action {
	switch {
	case chargeKW > 0:
		return ActionCharging
	case dischargeKW > 0:
		return ActionDischarging
	default:
		return ActionIdle
	}
}

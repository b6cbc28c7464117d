package logic

// Alarm thresholds. Crossing any single one raises the alarm.
const (
	AlarmTempC       = 34.0
	AlarmHumidityPct = 85
	AlarmDistanceCm  = 30.0
)

// Overlay thresholds. Overlays tint the indicator without raising the alarm.
const (
	OverlayHumidityPct = 75
	OverlayDistanceCm  = 100.0
)

// Temperature band upper bounds, degrees C.
const (
	BandCoolMaxC    = 18
	BandTealMaxC    = 24
	BandComfortMaxC = 28
)

// Verdict is the result of evaluating a reading: the derived alarm state and
// the indicator/buzzer outputs that should be applied.
type Verdict struct {
	Alarm     AlarmState
	Indicator Color
	BuzzerOn  bool
}

// Evaluate maps a reading to an alarm verdict.
//
// The alarm rule strictly dominates: if any threshold is crossed the result
// is solid red with the buzzer on, regardless of overlay conditions. Below
// the alarm thresholds the indicator follows the temperature band, then the
// humidity and proximity overlays are applied in that order — when both
// hold, the proximity tint wins.
//
// Absent fields are excluded from their rules: an unknown distance can
// neither alarm nor tint, and an unknown temperature skips banding entirely,
// leaving the idle color.
func Evaluate(r Reading) Verdict {
	if alarmed(r) {
		return Verdict{Alarm: AlarmRaised, Indicator: ColorAlarm, BuzzerOn: true}
	}

	color := ColorIdle
	if r.HasTemperature {
		switch t := r.TemperatureC; {
		case t <= BandCoolMaxC:
			color = ColorCoolBlue
		case t <= BandTealMaxC:
			color = ColorTeal
		case t <= BandComfortMaxC:
			color = ColorComfort
		default:
			// >34 is unreachable here, caught by the alarm rule.
			color = ColorAmber
		}
	}

	if r.HasHumidity && r.HumidityPct > OverlayHumidityPct {
		color = ColorHumid
	}
	if r.HasDistance && r.DistanceCm < OverlayDistanceCm {
		color = ColorNear
	}

	return Verdict{Alarm: AlarmNormal, Indicator: color}
}

func alarmed(r Reading) bool {
	if r.HasTemperature && float64(r.TemperatureC) > AlarmTempC {
		return true
	}
	if r.HasHumidity && r.HumidityPct > AlarmHumidityPct {
		return true
	}
	if r.HasDistance && r.DistanceCm < AlarmDistanceCm {
		return true
	}
	return false
}

package display

import (
	"fmt"

	"github.com/keating/ivy-monitor/internal/logic"
)

// Unknown is the marker shown for a field that has never been read.
const Unknown = "?"

// ClimateLine formats the temperature/humidity summary.
func ClimateLine(r logic.Reading) string {
	t := Unknown
	if r.HasTemperature {
		t = fmt.Sprintf("%dC", r.TemperatureC)
	}
	h := Unknown
	if r.HasHumidity {
		h = fmt.Sprintf("%d%%", r.HumidityPct)
	}
	return fmt.Sprintf("T:%s H:%s", t, h)
}

// DistanceLine formats the distance summary.
func DistanceLine(r logic.Reading) string {
	if !r.HasDistance {
		return "D:" + Unknown
	}
	return fmt.Sprintf("D:%.1fcm", r.DistanceCm)
}

// StatusLines builds the two lines shown while the device is active. During
// an alarm the second line carries the alarm marker next to the distance.
func StatusLines(r logic.Reading, alarm logic.AlarmState) (string, string) {
	line2 := DistanceLine(r)
	if alarm == logic.AlarmRaised {
		line2 = fmt.Sprintf("%-9s !ALARM", line2)
	}
	return ClimateLine(r), line2
}

// IdleLines is the presentation shown while the device is idle.
func IdleLines() (string, string) {
	return "ivy-01 standby", "press to start"
}

// BootLines is the greeting shown once at startup.
func BootLines() (string, string) {
	return "ivy-01", "monitor ready"
}

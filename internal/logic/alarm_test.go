package logic

import "testing"

func known(temp, humid int, dist float64) Reading {
	return Reading{
		TemperatureC:   temp,
		HasTemperature: true,
		HumidityPct:    humid,
		HasHumidity:    true,
		DistanceCm:     dist,
		HasDistance:    true,
	}
}

func TestTemperatureAlarmThresholdInIsolation(t *testing.T) {
	// Humidity and distance held in safe territory so only temperature can trip.
	cases := []struct {
		temp  int
		alarm bool
	}{
		{30, false},
		{34, false}, // boundary: alarm fires strictly above 34.0
		{35, true},
		{40, true},
	}
	for _, c := range cases {
		v := Evaluate(known(c.temp, 50, 200))
		got := v.Alarm == AlarmRaised
		if got != c.alarm {
			t.Errorf("temp=%d: alarm=%v, want %v", c.temp, got, c.alarm)
		}
	}
}

func TestHumidityAlarmThresholdInIsolation(t *testing.T) {
	cases := []struct {
		humid int
		alarm bool
	}{
		{50, false},
		{85, false}, // boundary
		{86, true},
		{100, true},
	}
	for _, c := range cases {
		v := Evaluate(known(25, c.humid, 200))
		got := v.Alarm == AlarmRaised
		if got != c.alarm {
			t.Errorf("humid=%d: alarm=%v, want %v", c.humid, got, c.alarm)
		}
	}
}

func TestDistanceAlarmThresholdInIsolation(t *testing.T) {
	cases := []struct {
		dist  float64
		alarm bool
	}{
		{200, false},
		{30, false}, // boundary: alarm fires strictly below 30
		{29.9, true},
		{5, true},
	}
	for _, c := range cases {
		v := Evaluate(known(25, 50, c.dist))
		got := v.Alarm == AlarmRaised
		if got != c.alarm {
			t.Errorf("dist=%.1f: alarm=%v, want %v", c.dist, got, c.alarm)
		}
	}
}

func TestAlarmDominatesOverlays(t *testing.T) {
	// Both overlay conditions hold AND the temperature alarm trips:
	// result must be solid red with the buzzer on.
	v := Evaluate(known(40, 80, 50))
	if v.Alarm != AlarmRaised {
		t.Errorf("alarm state: got %s, want %s", v.Alarm, AlarmRaised)
	}
	if v.Indicator != ColorAlarm {
		t.Errorf("indicator: got %+v, want %+v", v.Indicator, ColorAlarm)
	}
	if !v.BuzzerOn {
		t.Error("buzzer should be on during alarm")
	}
}

func TestComfortScenario(t *testing.T) {
	// temp=25, humid=50, dist=200 -> Normal, comfort green, buzzer off
	v := Evaluate(known(25, 50, 200))
	if v.Alarm != AlarmNormal {
		t.Errorf("alarm state: got %s, want %s", v.Alarm, AlarmNormal)
	}
	if v.Indicator != ColorComfort {
		t.Errorf("indicator: got %+v, want %+v", v.Indicator, ColorComfort)
	}
	if v.BuzzerOn {
		t.Error("buzzer should be off")
	}
}

func TestHotScenario(t *testing.T) {
	// temp=40, humid=50, dist=200 -> Alarm, red, buzzer on
	v := Evaluate(known(40, 50, 200))
	if v.Alarm != AlarmRaised || v.Indicator != ColorAlarm || !v.BuzzerOn {
		t.Errorf("got %+v, want raised/red/buzzer", v)
	}
}

func TestHumidOverlayScenario(t *testing.T) {
	// temp=20, humid=80, dist=200 -> Normal with bluish tint, buzzer off
	v := Evaluate(known(20, 80, 200))
	if v.Alarm != AlarmNormal {
		t.Errorf("alarm state: got %s, want %s", v.Alarm, AlarmNormal)
	}
	if v.Indicator != ColorHumid {
		t.Errorf("indicator: got %+v, want humidity tint %+v", v.Indicator, ColorHumid)
	}
	if v.BuzzerOn {
		t.Error("buzzer should be off for overlay")
	}
}

func TestProximityOverlayWinsWhenBothApply(t *testing.T) {
	// Humidity tint and proximity tint both hold; proximity is applied last.
	v := Evaluate(known(20, 80, 50))
	if v.Alarm != AlarmNormal {
		t.Errorf("alarm state: got %s, want %s", v.Alarm, AlarmNormal)
	}
	if v.Indicator != ColorNear {
		t.Errorf("indicator: got %+v, want proximity tint %+v", v.Indicator, ColorNear)
	}
}

func TestTemperatureBands(t *testing.T) {
	cases := []struct {
		temp int
		want Color
	}{
		{10, ColorCoolBlue},
		{18, ColorCoolBlue},
		{19, ColorTeal},
		{24, ColorTeal},
		{25, ColorComfort},
		{28, ColorComfort},
		{29, ColorAmber},
		{34, ColorAmber},
	}
	for _, c := range cases {
		v := Evaluate(known(c.temp, 50, 200))
		if v.Indicator != c.want {
			t.Errorf("temp=%d: indicator %+v, want %+v", c.temp, v.Indicator, c.want)
		}
	}
}

func TestAllFieldsAbsent(t *testing.T) {
	v := Evaluate(Reading{})
	if v.Alarm != AlarmNormal {
		t.Errorf("absent data must not alarm: got %s", v.Alarm)
	}
	if v.Indicator != ColorIdle {
		t.Errorf("indicator: got %+v, want idle %+v", v.Indicator, ColorIdle)
	}
	if v.BuzzerOn {
		t.Error("buzzer should be off with no data")
	}
}

func TestAbsentDistanceSkipsDistanceRules(t *testing.T) {
	r := known(20, 50, 0)
	r.HasDistance = false
	r.DistanceCm = 0 // a raw zero must not read as "closer than 30cm"
	v := Evaluate(r)
	if v.Alarm != AlarmRaised && v.Indicator == ColorNear {
		t.Errorf("proximity tint applied for absent distance")
	}
	if v.Alarm != AlarmNormal {
		t.Errorf("absent distance must not alarm: got %s", v.Alarm)
	}
	if v.Indicator != ColorTeal {
		t.Errorf("indicator: got %+v, want band color %+v", v.Indicator, ColorTeal)
	}
}

func TestAbsentTemperatureSkipsBanding(t *testing.T) {
	r := Reading{HumidityPct: 50, HasHumidity: true, DistanceCm: 200, HasDistance: true}
	v := Evaluate(r)
	if v.Indicator != ColorIdle {
		t.Errorf("indicator: got %+v, want idle %+v", v.Indicator, ColorIdle)
	}
	// Overlays still work without temperature.
	r.HumidityPct = 80
	v = Evaluate(r)
	if v.Indicator != ColorHumid {
		t.Errorf("indicator: got %+v, want humidity tint %+v", v.Indicator, ColorHumid)
	}
}

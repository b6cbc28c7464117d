package display

import (
	"testing"

	"github.com/keating/ivy-monitor/internal/logic"
)

func TestClimateLine(t *testing.T) {
	cases := []struct {
		name string
		r    logic.Reading
		want string
	}{
		{
			name: "both known",
			r:    logic.Reading{TemperatureC: 24, HasTemperature: true, HumidityPct: 60, HasHumidity: true},
			want: "T:24C H:60%",
		},
		{
			name: "all unknown",
			r:    logic.Reading{},
			want: "T:? H:?",
		},
		{
			name: "humidity unknown",
			r:    logic.Reading{TemperatureC: 24, HasTemperature: true},
			want: "T:24C H:?",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClimateLine(c.r); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestDistanceLine(t *testing.T) {
	r := logic.Reading{DistanceCm: 123.45, HasDistance: true}
	if got := DistanceLine(r); got != "D:123.5cm" {
		t.Errorf("got %q", got)
	}
	if got := DistanceLine(logic.Reading{}); got != "D:?" {
		t.Errorf("unknown distance: got %q", got)
	}
}

func TestStatusLinesCarryAlarmMarker(t *testing.T) {
	r := logic.Reading{
		TemperatureC: 40, HasTemperature: true,
		HumidityPct: 50, HasHumidity: true,
		DistanceCm: 200, HasDistance: true,
	}
	_, l2 := StatusLines(r, logic.AlarmRaised)
	if want := "D:200.0cm !ALARM"; l2 != want {
		t.Errorf("alarm line: got %q, want %q", l2, want)
	}
	_, l2 = StatusLines(r, logic.AlarmNormal)
	if l2 != "D:200.0cm" {
		t.Errorf("normal line: got %q", l2)
	}
}

package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/keating/ivy-monitor/internal/status"
)

var pageTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>ivy-monitor</title>
<style>
body { font-family: monospace; margin: 2em; background: #111; color: #ddd; }
h1 { font-size: 1.2em; }
table { border-collapse: collapse; }
td { padding: 0.2em 1em 0.2em 0; }
.alarm { color: #f33; font-weight: bold; }
.normal { color: #3c3; }
</style>
</head>
<body>
<h1>ivy-monitor &mdash; {{.Mode}}</h1>
<table>
<tr><td>alarm</td><td class="{{if .AlarmRaised}}alarm{{else}}normal{{end}}">{{.Alarm}}</td></tr>
<tr><td>temperature</td><td>{{.Temperature}}</td></tr>
<tr><td>humidity</td><td>{{.Humidity}}</td></tr>
<tr><td>distance</td><td>{{.Distance}}</td></tr>
<tr><td>uptime</td><td>{{.Uptime}}</td></tr>
<tr><td>network</td><td>{{.Network}}</td></tr>
<tr><td>mqtt</td><td>{{.MQTT}}</td></tr>
<tr><td>polls</td><td>{{.Polls}} ({{.ReadFailures}} failed reads)</td></tr>
<tr><td>uploads</td><td>{{.Uploads}} ok / {{.UploadsSkipped}} skipped / {{.UploadsFailed}} failed</td></tr>
</table>
<p><a href="/status.json">status.json</a> &middot; <a href="/metrics">metrics</a></p>
</body>
</html>
`))

type pageData struct {
	Mode           string
	Alarm          string
	AlarmRaised    bool
	Temperature    string
	Humidity       string
	Distance       string
	Uptime         string
	Network        string
	MQTT           string
	Polls          int
	ReadFailures   int
	Uploads        int
	UploadsSkipped int
	UploadsFailed  int
}

func renderHTML(w io.Writer, snap status.Snapshot) {
	d := pageData{
		Mode:           string(snap.Activation),
		Alarm:          string(snap.Alarm),
		AlarmRaised:    snap.Alarm == "ALARM",
		Temperature:    "unknown",
		Humidity:       "unknown",
		Distance:       "unknown",
		Uptime:         snap.Uptime().Truncate(time.Second).String(),
		Network:        connLabel(snap.Connected),
		MQTT:           connLabel(snap.MQTTConnected),
		Polls:          snap.Counters.Polls,
		ReadFailures:   snap.Counters.ClimateFailures + snap.Counters.DistanceFailures,
		Uploads:        snap.Counters.UploadsOK,
		UploadsSkipped: snap.Counters.UploadsSkipped,
		UploadsFailed:  snap.Counters.UploadsFailed,
	}
	if snap.Reading.HasTemperature {
		d.Temperature = fmt.Sprintf("%d C", snap.Reading.TemperatureC)
	}
	if snap.Reading.HasHumidity {
		d.Humidity = fmt.Sprintf("%d %%", snap.Reading.HumidityPct)
	}
	if snap.Reading.HasDistance {
		d.Distance = fmt.Sprintf("%.1f cm", snap.Reading.DistanceCm)
	}
	_ = pageTmpl.Execute(w, d)
}

func connLabel(up bool) string {
	if up {
		return "connected"
	}
	return "disconnected"
}

// Package uplink posts the latest reading snapshot to the collection
// endpoint. Uploads are fire-and-forget: one POST per trigger, no retry, no
// backoff, and the response body is consumed only for logging.
package uplink

import (
	"math"

	"github.com/keating/ivy-monitor/internal/logic"
)

// DeviceID identifies this unit to the collection endpoint.
const DeviceID = "ivy-01"

// AbsentValue is sent for a field that has never been read. The endpoint
// indexes all three value keys unconditionally, so fields cannot be omitted.
const AbsentValue = -1

// Payload is the upload body. Field names are fixed by the endpoint.
type Payload struct {
	DeviceID string `json:"device_id"`
	Temp     int    `json:"Temp"`
	Humid    int    `json:"Humid"`
	Proxy    int    `json:"Proxy"`
}

// BuildPayload converts a reading snapshot to the wire payload. Distance is
// rounded to the nearest integer centimeter.
func BuildPayload(r logic.Reading) Payload {
	p := Payload{
		DeviceID: DeviceID,
		Temp:     AbsentValue,
		Humid:    AbsentValue,
		Proxy:    AbsentValue,
	}
	if r.HasTemperature {
		p.Temp = r.TemperatureC
	}
	if r.HasHumidity {
		p.Humid = r.HumidityPct
	}
	if r.HasDistance {
		p.Proxy = int(math.Round(r.DistanceCm))
	}
	return p
}

// Uploader performs one upload attempt with the given snapshot.
type Uploader interface {
	Upload(r logic.Reading) error
}

// Connectivity reports whether network-dependent work is worth attempting.
type Connectivity interface {
	IsConnected() bool
}

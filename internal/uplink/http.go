package uplink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/keating/ivy-monitor/internal/logic"
)

// DefaultTimeout bounds one upload attempt end to end. An in-flight upload
// runs to this bound even if the device deactivates mid-request.
const DefaultTimeout = 10 * time.Second

// HTTPUploader posts JSON snapshots to the collection endpoint.
type HTTPUploader struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

// NewHTTPUploader creates an uploader for the given endpoint URL.
func NewHTTPUploader(url string, timeout time.Duration, log *zap.Logger) *HTTPUploader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPUploader{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Upload performs one POST. Only transport-level failure is an error; the
// endpoint's response (an AI micro-report) never affects device state and is
// read only so it can be logged at debug level.
func (u *HTTPUploader) Upload(r logic.Reading) error {
	body, err := json.Marshal(BuildPayload(r))
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := u.client.Post(u.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post reading: %w", err)
	}
	defer resp.Body.Close()

	if u.log.Core().Enabled(zapcore.DebugLevel) {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		u.log.Debug("upload response",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", b))
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return nil
}

// envNetworkStatus is the pi-helper variable written to /run/pi-helper.env.
const envNetworkStatus = "NETWORK_STATUS"

// EnvConnectivity reads connectivity from the pi-helper environment. An
// unset variable means no helper is running and the network is assumed up.
type EnvConnectivity struct{}

// IsConnected reports whether network work is worth attempting.
func (EnvConnectivity) IsConnected() bool {
	s := os.Getenv(envNetworkStatus)
	return s == "" || s == "connected"
}

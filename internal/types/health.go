// Package types provides shared types for health reporting
package types

// ReadyState is the numeric readiness code of the database handle.
// The codes follow the mongoose connection.readyState convention.
type ReadyState int

const (
	StateDisconnected  ReadyState = 0
	StateConnected     ReadyState = 1
	StateConnecting    ReadyState = 2
	StateDisconnecting ReadyState = 3
	StateUninitialized ReadyState = 99
)

// StatusUnknown is reported for any code missing from the label table
const StatusUnknown = "unknown"

// NotConnectedHost is the host sentinel reported while no connection is open
const NotConnectedHost = "not connected"

var readyStateLabels = map[ReadyState]string{
	StateDisconnected:  "disconnected",
	StateConnected:     "connected",
	StateConnecting:    "connecting",
	StateDisconnecting: "disconnecting",
	StateUninitialized: "uninitialized",
}

// Label maps the state code to its fixed label, "unknown" for unrecognized codes
func (s ReadyState) Label() string {
	if label, ok := readyStateLabels[s]; ok {
		return label
	}
	return StatusUnknown
}

func (s ReadyState) String() string {
	return s.Label()
}

// DatabaseStatus is the nested database object of the health response
type DatabaseStatus struct {
	Status     string `json:"status"`
	ReadyState int    `json:"readyState"`
	Host       string `json:"host"`
}

// HealthResponse is the body returned by GET /health
type HealthResponse struct {
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Uptime      float64        `json:"uptime"`
	Environment string         `json:"environment"`
	MongoDB     DatabaseStatus `json:"mongodb"`
}

// RouteStatus is the body returned by route group stubs
type RouteStatus struct {
	Status string `json:"status"`
}

package contract

const HealthStatusOK = "OK"

// HealthResponse is served by the liveness probe.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

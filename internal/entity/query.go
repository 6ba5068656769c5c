package entity

import "encoding/json"

// QueryRequest is the body of POST /api/query on both the relay and upstream
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResponse is what the answer service returns on success
type QueryResponse struct {
	Answer string `json:"answer"`
}

// ErrorResponse is the relay's failure body: a machine field and a human fallback
type ErrorResponse struct {
	Error  string `json:"error"`
	Answer string `json:"answer"`
}

// UpstreamAnswer is an upstream 2xx response relayed verbatim
type UpstreamAnswer struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// UpstreamHealthResponse is returned by GET /api/python-health
type UpstreamHealthResponse struct {
	Status         string          `json:"status"`
	PythonResponse json.RawMessage `json:"pythonResponse,omitempty"`
	Error          string          `json:"error,omitempty"`
}

package http

// Envelope is the standard response shape: failures carry an empty data
// slice and a message, successes carry data and, for list queries, a
// pagination block.
type Envelope struct {
	Data       interface{} `json:"data"`
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
}

// ValidationError represents one failed validation rule.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"page"`
	Message string                 `json:"message,omitempty" example:"page must be at least 1"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

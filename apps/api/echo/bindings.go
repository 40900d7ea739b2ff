package echoapi

// Shared bindings used by more than one handler file.

type (
	SuccessResponse struct {
		Success string `json:"success"`
	}

	// RecordedResponse acknowledges a write that may legitimately be a
	// no-op, eg a throttled visit or a repeated completion.
	RecordedResponse struct {
		Recorded bool `json:"recorded"`
	}
)

package chatsvc

import (
	"context"

	iriscore "github.com/petal-labs/iris/core"

	"github.com/VarunPasupunuri/mind-sprouts/core"
)

// Recorder is a canned chat client for tests and offline development: it
// yields Output (or fails with Err) and remembers the last request.
type Recorder struct {
	Output string
	Err    error
	Last   *iriscore.ChatRequest
}

func (r *Recorder) Chat(_ context.Context, req *iriscore.ChatRequest) (*iriscore.ChatResponse, error) {
	r.Last = req
	if r.Err != nil {
		return nil, r.Err
	}
	return &iriscore.ChatResponse{Output: r.Output}, nil
}

// NewServiceMock returns a TipService backed by rec instead of a live
// provider.
func NewServiceMock(rec *Recorder, log core.Logger) *TipService {
	return &TipService{client: rec, model: "mock", log: log}
}

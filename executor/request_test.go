package executor

import (
	"errors"
	"testing"
)

func TestResponse_Success(t *testing.T) {
	ok := Response[int, int]{Result: 1, Request: Request[int]{Item: 1, ID: 0}}
	if !ok.Success() {
		t.Error("response without error should be successful")
	}

	failed := Response[int, int]{Request: Request[int]{Item: 2, ID: 1}, Err: errors.New("nope")}
	if failed.Success() {
		t.Error("response with error should not be successful")
	}
}

func TestResponses_TallyHelpers(t *testing.T) {
	responses := []Response[int, int]{
		{Result: 0, Request: Request[int]{Item: 0, ID: 0}},
		{Request: Request[int]{Item: 1, ID: 1}, Err: errors.New("bad")},
		{Result: 4, Request: Request[int]{Item: 2, ID: 2}},
		{Request: Request[int]{Item: 3, ID: 3}, Err: errors.New("worse")},
	}

	if got := CountSuccessful(responses); got != 2 {
		t.Errorf("CountSuccessful: expected 2, got %d", got)
	}
	if got := CountFailed(responses); got != 2 {
		t.Errorf("CountFailed: expected 2, got %d", got)
	}

	succeeded := FilterSuccessful(responses)
	if len(succeeded) != 2 || succeeded[0].Request.Item != 0 || succeeded[1].Request.Item != 2 {
		t.Errorf("FilterSuccessful returned wrong responses: %+v", succeeded)
	}

	failed := FilterFailed(responses)
	if len(failed) != 2 || failed[0].Request.Item != 1 || failed[1].Request.Item != 3 {
		t.Errorf("FilterFailed returned wrong responses: %+v", failed)
	}
}

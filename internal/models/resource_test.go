package models

import (
	"errors"
	"testing"
)

func TestResourceStates(t *testing.T) {
	loading := Loading[int]()
	if !loading.IsLoading() || loading.IsSuccess() || loading.IsError() {
		t.Errorf("Loading resource reports wrong state: %+v", loading)
	}

	success := Success([]string{"a", "b"})
	if !success.IsSuccess() {
		t.Errorf("Success resource reports wrong state: %+v", success)
	}
	if len(success.Data) != 2 {
		t.Errorf("Data = %v, want 2 elements", success.Data)
	}

	cause := errors.New("network down")
	failure := Failure[int](cause)
	if !failure.IsError() {
		t.Errorf("Failure resource reports wrong state: %+v", failure)
	}
	if !errors.Is(failure.Err, cause) {
		t.Errorf("Err = %v, want %v", failure.Err, cause)
	}
}

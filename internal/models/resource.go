package models

// ResourceStatus is the state of a Resource.
type ResourceStatus int

const (
	StatusLoading ResourceStatus = iota
	StatusSuccess
	StatusError
)

// Resource is the tri-state result handed to UI state holders:
// loading, success-with-data, or error-with-cause. Expected failures
// (network errors, cache misses) travel through this type rather than
// panics.
type Resource[T any] struct {
	Status ResourceStatus
	Data   T
	Err    error
}

// Loading returns a loading resource.
func Loading[T any]() Resource[T] {
	return Resource[T]{Status: StatusLoading}
}

// Success returns a resource carrying data.
func Success[T any](data T) Resource[T] {
	return Resource[T]{Status: StatusSuccess, Data: data}
}

// Failure returns a resource carrying an error.
func Failure[T any](err error) Resource[T] {
	return Resource[T]{Status: StatusError, Err: err}
}

// IsLoading reports whether the resource is still loading.
func (r Resource[T]) IsLoading() bool { return r.Status == StatusLoading }

// IsSuccess reports whether the resource carries data.
func (r Resource[T]) IsSuccess() bool { return r.Status == StatusSuccess }

// IsError reports whether the resource carries an error.
func (r Resource[T]) IsError() bool { return r.Status == StatusError }

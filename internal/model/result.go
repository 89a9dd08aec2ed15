package model

// Result carries either data or a human-readable error from a service
// boundary. Fetch failures are converted to a Result rather than escaping.
type Result[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error,omitempty"`

	// Err keeps the underlying error for callers that classify failures.
	Err error `json:"-"`
}

// OK wraps data in a successful Result.
func OK[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Fail builds a failed Result from err.
func Fail[T any](err error) Result[T] {
	var r Result[T]
	if err != nil {
		r.Error = err.Error()
		r.Err = err
	}
	return r
}

// Failed reports whether the Result carries an error.
func (r Result[T]) Failed() bool {
	return r.Error != ""
}

package apiclient

// Source tells where the data of a Result came from.
type Source int

const (
	Live Source = iota
	Fallback
)

func (s Source) String() string {
	if s == Live {
		return "live"
	}
	return "fallback"
}

// Result carries fetched data together with its origin. Err is set whenever
// Source is Fallback and holds the reason the live data was not used.
type Result[T any] struct {
	Data   T
	Source Source
	Err    error
}

func live[T any](data T) Result[T] {
	return Result[T]{Data: data, Source: Live}
}

func fallback[T any](data T, err error) Result[T] {
	return Result[T]{Data: data, Source: Fallback, Err: err}
}

func (r Result[T]) IsLive() bool {
	return r.Source == Live
}

package batch

// Result holds the outcome of one item of a batch.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the item succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Outcome is what remains of a batch after gathering: the successful values
// in input order and the errors of the dropped items.
type Outcome[T any] struct {
	Values   []T
	Failures []error
}

// Failed returns the number of dropped items.
func (o Outcome[T]) Failed() int {
	return len(o.Failures)
}

// Gather keeps the successes and drops the failures.
func Gather[T any](results []Result[T]) Outcome[T] {
	out := Outcome[T]{Values: make([]T, 0, len(results))}
	for _, r := range results {
		if r.OK() {
			out.Values = append(out.Values, r.Value)
			continue
		}
		out.Failures = append(out.Failures, r.Err)
	}
	return out
}

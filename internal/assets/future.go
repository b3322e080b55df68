package assets

// State is the lifecycle of a Future.
type State int

const (
	Pending State = iota
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Future is the result of an asynchronous load. It settles exactly once.
//
// A Future is not safe for concurrent use: it is settled by Loader.Poll on the
// render thread, and continuations run there too. Continuations added after
// the Future settled run immediately.
type Future[T any] struct {
	state  State
	value  T
	err    error
	onDone []func(T)
	onFail []func(error)
}

// Then registers fn to run with the value once the load succeeds.
func (f *Future[T]) Then(fn func(T)) *Future[T] {
	switch f.state {
	case Resolved:
		fn(f.value)
	case Pending:
		f.onDone = append(f.onDone, fn)
	}
	return f
}

// Catch registers fn to run with the error if the load fails.
func (f *Future[T]) Catch(fn func(error)) *Future[T] {
	switch f.state {
	case Failed:
		fn(f.err)
	case Pending:
		f.onFail = append(f.onFail, fn)
	}
	return f
}

func (f *Future[T]) State() State {
	return f.state
}

// Result returns the settled value and error. Both are zero while pending.
func (f *Future[T]) Result() (T, error) {
	return f.value, f.err
}

func (f *Future[T]) resolve(v T) {
	if f.state != Pending {
		return
	}
	f.state = Resolved
	f.value = v
	callbacks := f.onDone
	f.onDone, f.onFail = nil, nil
	for _, fn := range callbacks {
		fn(v)
	}
}

func (f *Future[T]) fail(err error) {
	if f.state != Pending {
		return
	}
	f.state = Failed
	f.err = err
	callbacks := f.onFail
	f.onDone, f.onFail = nil, nil
	for _, fn := range callbacks {
		fn(err)
	}
}

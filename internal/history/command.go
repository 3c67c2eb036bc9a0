package history

// Executor performs the forward effect of a command.
type Executor[T any] interface {
	// Execute applies cmd and returns an error if it could not be applied.
	Execute(cmd T) error
}

// Reverter performs the inverse effect of a command.
type Reverter[T any] interface {
	// Revert undoes cmd and returns an error if it could not be undone.
	Revert(cmd T) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc[T any] func(cmd T) error

// Execute calls f(cmd).
func (f ExecutorFunc[T]) Execute(cmd T) error {
	return f(cmd)
}

// ReverterFunc adapts a function to the Reverter interface.
type ReverterFunc[T any] func(cmd T) error

// Revert calls f(cmd).
func (f ReverterFunc[T]) Revert(cmd T) error {
	return f(cmd)
}

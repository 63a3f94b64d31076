package util

// Option is a functional option that mutates a value of type T.
type Option[T any] interface {
	ApplyTo(target *T)
}

// FunctionalOption adapts a plain function into an Option.
type FunctionalOption[T any] func(target *T)

// ApplyTo applies the option to the target.
func (f FunctionalOption[T]) ApplyTo(target *T) {
	f(target)
}

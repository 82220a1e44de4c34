// Package disalloweq provides a method for disallowing struct comparisons
// with the `==` operator.
package disalloweq

// DisallowEqual can be used to cause the compiler to reject attempts to
// compare structs with the `==` operator.  Scalars and points in this
// module embed it so that callers are forced to use the constant-time
// Equal methods instead of struct comparison.
type DisallowEqual [0]func()

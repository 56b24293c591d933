package domain

// ValueObject is implemented by immutable values whose identity is every field.
// Declaring it is optional; it documents intent and gives a stable digest.
type ValueObject interface {
	ValueHash() (uint64, error)
}

// Package kernel contains shared value objects used across all domain models.
//
// The kernel provides the building blocks that every aggregate depends on:
//   - UUID: validated entity identifiers
//   - Money: exact-decimal monetary amounts
//
// Value objects in this package are immutable and validated at construction.
// They cannot be created in an invalid state when using the provided
// constructor functions.
package kernel

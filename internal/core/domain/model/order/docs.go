// Package order contains the Order aggregate root and its lifecycle rules.
//
// The package models a writing-service order as a state machine: a closed
// set of statuses, a closed set of named actions, and a fixed transition
// table mapping each action to the statuses it is legal from. All order
// mutation flows through the aggregate's action methods, which consult the
// table before changing any field, so no code path can move an order into
// a status that is not reachable from its current one.
package order

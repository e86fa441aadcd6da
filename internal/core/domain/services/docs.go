// Package services contains stateless domain services implementing business
// rules that span or sit outside a single aggregate:
//
//   - PricingCalculator: computes an order's price breakdown from
//     tenant-scoped pricing configuration
//   - PaymentSplitter: plans how a payment drains its funding sources
//   - RevisionPolicy: decides whether a revision request falls inside the
//     configured revision window
//
// Domain services hold no mutable state and perform no IO; handlers feed
// them aggregates and configuration and persist whatever they return.
package services

// Package services provides domain services that work across aggregates of
// the fulfillment system and do not belong to any single one of them.
//
// The package includes:
//   - Allocator: splits a cart over the sellers' warehouses by priority
//   - OrderTreeBuilder: turns an allocation into a parent order and its sub-orders
//   - TransitionPolicy: decides which actor may request which sub-order transition
//
// All services are pure: they read snapshots handed to them and never touch
// storage, so they can be exercised without any infrastructure.
package services

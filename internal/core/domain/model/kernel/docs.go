// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier of orders, sub-orders, warehouses, products and actors
//   - Money: a non-negative decimal amount used for prices and order totals
//
// Both are immutable and safe for concurrent use. Their zero values are invalid
// and are rejected by Validate.
package kernel

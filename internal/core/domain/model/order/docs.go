// Package order provides the order tree of a checkout: one ParentOrder owned by
// the customer and one SubOrder per (seller, warehouse) pair that fulfills part
// of the cart, each carrying immutable OrderItems.
//
// Key business rules:
//   - A SubOrder follows Created -> Assembling -> Assembled -> Dispatched -> Delivered,
//     may be Cancelled from any non-terminal status, and returns from Dispatched to
//     Assembled when a courier gives a delivery up
//   - Delivered and Cancelled are terminal
//   - A ParentOrder's status is never set directly; it is derived from the statuses
//     of its sub-orders by DeriveParentStatus
//   - A SubOrder belongs to exactly one seller and one warehouse
package order

// Package inventory models warehouse stock as seen by the fulfillment engine.
//
// The package includes:
//   - StockEntry: the available quantity of one product in one warehouse
//   - WarehouseStock: an immutable snapshot of one warehouse used for allocation planning
//   - InsufficientStockError: the failure of a reservation against live stock
//
// Stock is only ever decremented through an inventory ledger reservation, and a
// StockEntry quantity is never negative.
package inventory

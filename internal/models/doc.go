// Package models defines the core domain models for boutik.
//
// The app manages four independent record sets, one per module:
//   - CreditData: clients, their debt transactions and payments
//   - OrderData: order categories, item templates and orders
//   - PriceListData: the standalone price list
//   - OverData: "over" stock items
//
// Each set is persisted as its own snapshot (see internal/storage), matching
// the one-key-per-module layout of the original local-storage database.
//
// # Design Principles
//
//  1. Derived fields (Client.TotalDebt, OrderItem.VATAmount/TotalPrice,
//     Order.TotalCost) are recomputed by every mutating operation, never
//     trusted from input.
//  2. Relationships use ID strings, not pointers, to avoid circular
//     references and keep the JSON shapes flat.
//  3. JSON tags follow the legacy persisted shape (camelCase); the remote
//     store maps to snake_case wire types in its own DTO layer.
package models

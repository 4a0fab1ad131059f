// Package domain defines the core business entities of the inventory
// service: inventory items identified by SKU and the append-only audit
// log of quantity-affecting transactions. Entities carry their own
// construction and validation logic and have no persistence concerns.
package domain

// Package store defines the persistence interfaces for users, products, and
// orders, plus the shared sentinel errors and transaction helpers their
// implementations honor. The sqlite and postgres packages under
// internal/platform provide the concrete stores; services depend only on
// the interfaces here.
package store

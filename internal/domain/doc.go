// Package domain holds the core entities of the marketplace: user accounts,
// the products they list, and the orders placed against those products.
// Entities validate themselves on construction and carry no knowledge of
// storage or transport; authorization rules over them live in authz.go.
package domain

// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill the operations the dispatcher
// exposes.
//
// Each service focuses on one domain area (users, products, orders) and
// receives its dependencies through constructor injection: the database
// handle for transaction boundaries, the stores it reads and writes, and the
// credential services it needs. Handlers registered through RegisterAll are
// thin closures over service methods; the shared ordering contract lives
// there: authentication first, then input validation, then the service
// method, which resolves the target, authorizes the caller and finally
// mutates.
//
// Check-then-act sequences (duplicate email checks, ownership checks
// followed by writes) run inside a single transaction via
// store.RunInTransaction so the check and the mutation see the same state.
//
// Business failures are returned as *fault.Fault values or as store
// sentinel errors; the dispatcher translates both into the wire fault
// shape. Service methods never write partial state before a failure.
package service

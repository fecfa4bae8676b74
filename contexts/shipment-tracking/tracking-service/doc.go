// Package tracking implements the shipment record store inside parceltrack.
//
// Layering:
// - domain: core entities, invariants, errors
// - application: the service facade using explicit ports
// - ports: stable boundaries for persistence/events
// - adapters: concrete HTTP, memory, and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under shipment-tracking context.
// - Authorization decisions come in through the Authorizer port; this module
//   never resolves roles itself.
// - Event histories are append-only; nothing in this module mutates or removes
//   a recorded tracking event.
package tracking

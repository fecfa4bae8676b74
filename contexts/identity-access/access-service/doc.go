// Package access implements role-gated identity state inside parceltrack.
//
// It owns three pieces of state: the identity→role mapping, user profiles,
// and the one-shot bootstrap flag that grants the first admin. The policy
// table in domain/services is the single place the authorization matrix
// lives; other contexts consult it through the application service's
// Authorize method and never inspect roles directly.
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - Do not import other context adapters into domain/application.
package access

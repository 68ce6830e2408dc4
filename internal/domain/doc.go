// Package domain contains the core model for crosspost account verification.
//
// The domain is transport-agnostic: it does not depend on YAML parsing,
// net/http, or the terminal. Infra/adapters map into/from these types.
package domain

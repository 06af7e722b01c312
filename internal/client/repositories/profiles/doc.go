// Package profiles writes the application-side profile row that accompanies
// every registered identity.
//
// Two implementations satisfy Repository:
//
//   - PostgresRepository writes straight to a Postgres "profiles" table.
//   - ProviderRepository goes through the identity provider's data API.
//
// Upsert is keyed by the identity id and is safe to repeat.
package profiles

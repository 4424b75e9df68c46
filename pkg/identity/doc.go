// Package identity resolves account identities (display name, email) from
// the external user directory over its REST API.
package identity

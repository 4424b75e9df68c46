// Package batch implements the paginated scan pattern shared by the expiry
// jobs: fixed-size pages fetched at an offset cursor until a short page
// signals exhaustion.
package batch

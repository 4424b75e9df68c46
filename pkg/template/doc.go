// Package template looks up notification templates by logical name and
// language and renders them with verbatim placeholder substitution.
package template

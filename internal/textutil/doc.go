// Package textutil provides small string helpers shared by the importer:
// turning stock folder slugs into display names and matching slugs against
// keyword tables.
package textutil

// Package store is the adapter for the remote spreadsheet endpoint. Every
// operation is an HTTP POST of a small JSON envelope to one configured URL;
// the endpoint dispatches on the action field and answers with a status
// wrapper. The adapter exposes typed reads, creates and updates for the two
// collections and hides the envelope from the rest of the client.
//
// Updates are field-level overwrites on the remote side: sending a value for
// a list-typed field replaces the whole list. Callers that need to append
// (the read-by list) must read, compute and write the full list back. That
// read-modify-write is not atomic and can lose updates under concurrent
// writers; for the small teams this tool targets the risk is accepted and
// documented rather than fixed.
package store

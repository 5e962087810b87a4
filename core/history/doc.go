// Package history keeps an audit trail of config rewrites.
//
// Every save performed by the tool can be recorded as a Revision: which run
// wrote it, which command, which file was read and which was written, and the
// fields that changed. Revisions live in the database configured under
// "database"; when that is disabled or unreachable Open hands back Nop and
// the run goes on without history.
package history

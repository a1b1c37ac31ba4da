// Package approvals is the expense-approval domain served through the fetch
// gateway: employees, their card transactions and the approval toggle.
//
// Client reads through the cache and, after an approval changes, clears the
// paginated transaction list and the affected employee's list so the next
// read sees the new state. Backend is an in-process stand-in for the remote
// API with simulated latency and injectable failures; Handler exposes it
// over HTTP.
package approvals

// Package admin exposes the repair tooling over HTTP: a drift report built
// from a full-store scan, and an apply endpoint that executes the planned
// repairs. The heavy lifting lives in core/reconcile.
package admin

// Package client talks to the REST mock API that owns the catalog state.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts for the two remote collections
//     (MovieCollection, UserCollection, and Client combining them).
//  2. RESTClient, the HTTP implementation: one request per call, JSON bodies,
//     optional request pacing, an X-Request-ID on every request.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite file holding the session, with embedded goose migrations.
//
// # Error Handling
//
// Every failed request surfaces as *FetchError, which matches ErrTransport
// with errors.Is; a 404 also matches ErrNotFound. An empty id is rejected
// with ErrInvalidID before any I/O. Nothing is retried and no client-side
// timeout is imposed: callers control deadlines through the context.
//
// # Caching
//
// None. Consumers that want a cache (see services.CatalogService) own it.
package client

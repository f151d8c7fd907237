// Package incydr provides types, interfaces, and helpers for working with the
// Code42 Incydr API.
//
// # Overview
//
// The incydr package defines the domain types (e.g., Session, Alert,
// FileEventV2, TrustedActivity, AuditEvent) and the interfaces for
// resource-oriented clients (e.g., SessionsClient, AlertsClient). A concrete
// implementation of these clients is provided by the incydrclient package,
// which wires configuration, transport, and authentication. Most consumers
// should import incydrclient to construct a client and then interact with the
// resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/incydr-io/incydr-client/pkg/incydr"
//	  "github.com/incydr-io/incydr-client/pkg/incydrclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := incydrclient.NewWithClientCredentials(ctx, "https://api.us.code42.com", "key-id", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  // Fetch the first page of sessions
//	  page, err := cli.Sessions().GetPage(ctx, incydr.NewSessionQueryParams())
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//	}
//
// # Queries and pagination
//
// File event and alert searches are expressed with EventQuery and AlertQuery
// builders, which assemble filter groups the API understands. List endpoints
// come in two paging flavors: page-number endpoints (sessions, audit log,
// trusted activities, alerts) end when a page comes back short, and
// token-driven endpoints (file events) end when the server stops returning a
// next-page token. The OffsetIterator and TokenIterator types hide that
// difference behind HasNext/Next/All/ForEach:
//
//	it := cli.Sessions().IterAll(ctx, nil)
//	for it.HasNext() {
//	  session, err := it.Next()
//	  if err != nil { break }
//	  _ = session
//	}
//
// # Bulk state changes
//
// Endpoints that mutate many records at once are driven by ChunkedApply
// (explicit ID lists, split into API-sized batches) and DrainContinuation
// (server-side criteria, drained via continuation tokens). The sessions and
// alerts clients use these internally; they are exported for callers that
// build their own batch operations.
//
// # Errors
//
// API errors are represented by ResponseError and APIError. Input problems
// detected before any request is sent are reported as ValidationError.
// Helpers such as IsNotFound, IsUnauthorized, and IsValidation make it easy
// to branch on common cases.
package incydr

// Package incydrclient provides the primary entry point for constructing an
// Incydr API client that implements the incydr.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the incydr package. Most
// applications should import incydrclient to build a client, then use the
// returned incydr.Client to access resource-specific clients, for example
// Sessions(), Alerts(), FileEvents(), etc.
//
// Quick start
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
//
//	  // With an API client ID and secret. The client exchanges them for a
//	  // bearer token at /v1/oauth and re-requests one when it expires.
//	  cli, err := incydrclient.New(ctx, &incydr.Config{
//	    APIEndpoint:     "https://api.us.code42.com",
//	    APIClientID:     "key-1234",
//	    APIClientSecret: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an access token you already have:
//	  cli, err = incydrclient.New(ctx, &incydr.Config{
//	    APIEndpoint: "https://api.us.code42.com",
//	    AccessToken: "eyJhbGciOi...", // bearer token
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the incydr.Client interface
//	  sessions, err := cli.Sessions().IterAll(ctx, nil).All()
//	  if err != nil { log.Fatal(err) }
//	  _ = sessions
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithToken and
// NewWithClientCredentials that wrap New with the appropriate configuration.
package incydrclient

// Package coreclient provides the primary entry point for constructing a
// CORE v3 API client that implements the coreapi.Client interface.
//
// It layers configuration, HTTP transport, retries, throttling and response
// caching on top of the query, operation and decoding types defined in the
// coreapi package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/VakeDomen/core-api-client/pkg/coreapi"
//	  "github.com/VakeDomen/core-api-client/pkg/coreclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := coreclient.New(ctx, &coreapi.Config{APIKey: "my-key"})
//	  if err != nil { log.Fatal(err) }
//
//	  query := coreapi.PagedSearch(10, 0).
//	    And(coreapi.Exists("doi")).
//	    And(coreapi.Eq("publisher", "OJS"))
//
//	  resp, err := cli.SearchWorks(ctx, query)
//	  if err != nil { log.Fatal(err) }
//
//	  for _, work := range resp.Payload.Results {
//	    _ = work.Title
//	  }
//
//	  if remaining := resp.RateLimitRemaining; remaining != nil {
//	    log.Printf("%d requests left", *remaining)
//	  }
//	}
//
// # Helpers
//
// NewWithAPIKey and NewWithEndpoint wrap New with the matching configuration.
package coreclient

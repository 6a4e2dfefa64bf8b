// Package core provides the client for the lightblue document data service.
//
// The entry point is [DataConnection], opened with [Connect] against a
// service URL and released with [DataConnection.Close]:
//
//	conn, err := core.Connect(ctx, "https://host.example/db/data",
//	    core.WithClientCert("/etc/pki/client.pem", ""),
//	)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
// # Find and Insert
//
// Both operations use a fluent builder. Find fetches documents of a
// versioned entity, optionally filtered:
//
//	result, err := conn.Find("user", "1.0").
//	    Query(map[string]any{"field": "login", "op": "=", "rvalue": "jdoe"}).
//	    Projection(map[string]any{"field": "*", "include": true}).
//	    Execute(ctx)
//
// With no parameters the request goes as a bare GET and returns all
// instances of the entity. Insert writes documents:
//
//	result, err := conn.Insert("user", "1.0").
//	    Data([]map[string]any{{"login": "jdoe"}}).
//	    Execute(ctx)
//
// A pre-built request can be supplied with Request, either as a [Body]
// mapping that parameters merge into, or as [Raw] pre-serialized JSON that
// is sent verbatim.
//
// # Error Handling
//
// Failures surface as [*ClientError] wrapping a sentinel; check with
// errors.Is:
//
//	if errors.Is(err, core.ErrNotFound) {
//	    // entity endpoint does not exist
//	}
//
// Non-200 responses carry the HTTP status and raw body on the ClientError.
// This client makes exactly one network attempt per call; nothing is
// retried or suppressed.
//
// # Connection Model
//
// A DataConnection owns a single transport connection and the service
// protocol is half-duplex request/response, so a connection must not be
// shared across concurrent calls. Timeouts are configured up front with
// [WithTimeout] or per call through the context.
package core

// Package httputil provides the response and request helpers shared by the
// mindmap HTTP API.
//
// # Responses
//
// Successful responses are plain JSON written by [RespondJSON]. Failures use
// RFC 7807 problem details ([ProblemDetail]) with content type
// application/problem+json. [RespondErr] maps the codes from
// [github.com/matzehuels/mindmap/pkg/errors] onto HTTP statuses and adds the
// code as an extra "code" member so clients can branch on it:
//
//	{
//	  "type": "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.8",
//	  "title": "Conflict",
//	  "status": 409,
//	  "detail": "Root node cannot be deleted.",
//	  "code": "ROOT_DELETION"
//	}
//
// # Requests
//
// [ParseJSON] decodes a size-limited JSON body.
package httputil

package core

import (
	"context"
	"net/http"
	"net/url"
)

// Find returns a builder for a find request against a particular version of
// an entity. With no parameters it fetches all instances of the entity.
//
// FindRequest is NOT safe for concurrent use; build and execute it on one
// goroutine.
func (c *DataConnection) Find(entity, version string) *FindRequest {
	return &FindRequest{
		conn:    c,
		entity:  entity,
		version: version,
	}
}

// FindRequest builds a find operation. Parameters set here merge into the
// base request, overwriting keys of the same name; empty parameters are
// skipped. A Raw base request is sent verbatim and ignores all parameters.
type FindRequest struct {
	conn    *DataConnection
	entity  string
	version string

	base       RequestBody
	projection any
	query      any
	rng        any
	sort       any
}

// Projection selects which fields of matching documents to return.
func (r *FindRequest) Projection(p any) *FindRequest {
	r.projection = p
	return r
}

// Query sets the filter criteria selecting which documents match.
func (r *FindRequest) Query(q any) *FindRequest {
	r.query = q
	return r
}

// Range sets the result window bounds, e.g. []int{0, 49}.
func (r *FindRequest) Range(rg any) *FindRequest {
	r.rng = rg
	return r
}

// Sort sets the ordering of returned results.
func (r *FindRequest) Sort(s any) *FindRequest {
	r.sort = s
	return r
}

// Request sets the base request the parameters merge into. Pass a Body to
// pre-populate fields, or a Raw to send pre-serialized JSON as-is.
func (r *FindRequest) Request(body RequestBody) *FindRequest {
	r.base = body
	return r
}

// Execute sends the find request and returns the decoded JSON response.
// A non-empty merged request goes as a POST with a JSON body; an empty one
// as a GET with no body.
func (r *FindRequest) Execute(ctx context.Context) (any, error) {
	var out any
	if err := r.ExecuteInto(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExecuteInto sends the find request and decodes the JSON response into out.
func (r *FindRequest) ExecuteInto(ctx context.Context, out any) error {
	payload, empty, err := mergedBody(r.base, func(b Body) {
		if !isEmptyValue(r.projection) {
			b["projection"] = r.projection
		}
		if !isEmptyValue(r.query) {
			b["query"] = r.query
		}
		if !isEmptyValue(r.rng) {
			b["range"] = r.rng
		}
		if !isEmptyValue(r.sort) {
			b["sort"] = r.sort
		}
	})
	if err != nil {
		return decodeError("find", err)
	}

	path := r.conn.basePath + "/find/" + url.PathEscape(r.entity) + "/" + url.PathEscape(r.version)
	if empty {
		return r.conn.do(ctx, "find", http.MethodGet, path, nil, out)
	}
	return r.conn.do(ctx, "find", http.MethodPost, path, payload, out)
}

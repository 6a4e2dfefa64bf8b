package core

import (
	"context"
	"net/http"
	"net/url"
)

// Insert returns a builder for an insert request against a particular
// version of an entity. At least one of Data or a non-empty Request must be
// supplied.
//
// InsertRequest is NOT safe for concurrent use; build and execute it on one
// goroutine.
func (c *DataConnection) Insert(entity, version string) *InsertRequest {
	return &InsertRequest{
		conn:    c,
		entity:  entity,
		version: version,
	}
}

// InsertRequest builds an insert operation. Data and Projection merge into
// the base request under the "data" and "projection" keys; a Raw base
// request is sent verbatim and ignores both.
type InsertRequest struct {
	conn    *DataConnection
	entity  string
	version string

	base       RequestBody
	data       any
	projection any
}

// Data sets the documents to insert.
func (r *InsertRequest) Data(d any) *InsertRequest {
	r.data = d
	return r
}

// Projection selects which fields of the inserted documents to return.
func (r *InsertRequest) Projection(p any) *InsertRequest {
	r.projection = p
	return r
}

// Request sets the base request. Pass a Body to pre-populate fields, or a
// Raw to send pre-serialized JSON as-is.
func (r *InsertRequest) Request(body RequestBody) *InsertRequest {
	r.base = body
	return r
}

// Execute sends the insert request as a PUT and returns the decoded JSON
// response. It fails with ErrInvalidArgument, before any network I/O, when
// neither data nor a non-empty base request is supplied.
func (r *InsertRequest) Execute(ctx context.Context) (any, error) {
	var out any
	if err := r.ExecuteInto(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExecuteInto sends the insert request and decodes the JSON response into out.
func (r *InsertRequest) ExecuteInto(ctx context.Context, out any) error {
	payload, empty, err := mergedBody(r.base, func(b Body) {
		if !isEmptyValue(r.data) {
			b["data"] = r.data
		}
		if !isEmptyValue(r.projection) {
			b["projection"] = r.projection
		}
	})
	if err != nil {
		return decodeError("insert", err)
	}
	if empty {
		return invalidArgumentError("insert", "must provide data or a non-empty request")
	}

	path := r.conn.basePath + "/insert/" + url.PathEscape(r.entity) + "/" + url.PathEscape(r.version)
	return r.conn.do(ctx, "insert", http.MethodPut, path, payload, out)
}

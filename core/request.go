package core

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"time"
)

// RequestBody is the caller-supplied base request for Find and Insert.
// It has exactly two forms: Body, a structured mapping that operation
// parameters merge into, and Raw, pre-serialized JSON that passes to the
// wire unchanged.
type RequestBody interface {
	isRequestBody()
}

// Body is the structured request form, a JSON object under construction.
// Operation parameters (projection, query, range, sort, data) merge into it,
// overwriting keys of the same name.
type Body map[string]any

func (Body) isRequestBody() {}

// Raw is a pre-serialized JSON request. It is sent verbatim; operation
// parameters never merge into a Raw request.
type Raw string

func (Raw) isRequestBody() {}

// mergedBody builds the wire body for an operation: Raw passes through, and
// a structured base is copied into a fresh map before parameters merge in,
// so a Body reused across calls never accumulates state.
func mergedBody(base RequestBody, merge func(Body)) (payload []byte, empty bool, err error) {
	switch b := base.(type) {
	case Raw:
		return []byte(b), len(b) == 0, nil
	case Body:
		merged := make(Body, len(b))
		for k, v := range b {
			merged[k] = v
		}
		merge(merged)
		if len(merged) == 0 {
			return nil, true, nil
		}
		payload, err = json.Marshal(merged)
		return payload, false, err
	case nil:
		merged := make(Body)
		merge(merged)
		if len(merged) == 0 {
			return nil, true, nil
		}
		payload, err = json.Marshal(merged)
		return payload, false, err
	default:
		return nil, true, nil
	}
}

// isEmptyValue reports whether an operation parameter counts as absent:
// nil, or a map, slice, array, or string of length zero.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// do issues one request on the connection and decodes the response per the
// service contract: a 200 body is JSON, anything else is an error carrying
// the status and raw body.
func (c *DataConnection) do(ctx context.Context, op, method, path string, payload []byte, out any) error {
	if c.closed.Load() {
		return closedError(op)
	}

	u := "https://" + c.host + path
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return networkError(op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	c.telemetry.OnRequestStart(RequestStartEvent{
		Op:     op,
		Method: method,
		Path:   path,
		Start:  start,
	})

	status, err := c.roundTrip(op, req, out)

	c.telemetry.OnRequestEnd(RequestEndEvent{
		Op:     op,
		Method: method,
		Path:   path,
		Status: status,
		Start:  start,
		End:    time.Now(),
		Err:    err,
	})
	return err
}

func (c *DataConnection) roundTrip(op string, req *http.Request, out any) (int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, networkError(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, networkError(op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, requestError(op, resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, decodeError(op, err)
	}
	return resp.StatusCode, nil
}

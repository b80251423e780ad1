// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It covers the three inputs a handler reads: the JSON body, the path
identifiers captured by the router, and the authenticated caller.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/internal/platform/constants"
	"github.com/taibuivan/todo/internal/platform/ctxutil"
	"github.com/taibuivan/todo/internal/platform/router"
	"github.com/taibuivan/todo/internal/platform/sec"
	"github.com/taibuivan/todo/internal/platform/validate"
)

/*
DecodeObject reads the request body as a single JSON object.

Numbers decode as float64, arrays as []any and nested objects as
map[string]any, which is the shape the validation rules expect.

Returns:
  - map[string]any: The decoded object, never nil on success
  - error: apperr.InvalidJSON if the body is empty, malformed or not an object
*/
func DecodeObject(request *http.Request) (map[string]any, error) {
	if request.Body == nil {
		return nil, apperr.InvalidJSON(errors.New("empty body"))
	}

	decoder := json.NewDecoder(io.LimitReader(request.Body, constants.MaxRequestBodyBytes))

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, apperr.InvalidJSON(err)
	}

	// Exactly one value is allowed; anything after it but whitespace is malformed
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, apperr.InvalidJSON(errors.New("unexpected data after JSON value"))
	}

	object, ok := payload.(map[string]any)
	if !ok {
		return nil, apperr.InvalidJSON(errors.New("body is not a JSON object"))
	}

	return object, nil
}

/*
ParseID returns the named path capture after checking it is a UUID.

Parameters:
  - params: router.Params of the matched route
  - name: Capture name, e.g. "id"
  - resource: Lower-case entity name used in the error message, e.g. "list"

Returns:
  - string: The identifier in lower case
  - error: apperr.InvalidUUID if the capture is not a UUID
*/
func ParseID(params router.Params, name, resource string) (string, error) {
	id := params[name]
	if !validate.IsUUID(id) {
		return "", apperr.InvalidUUID(resource)
	}
	return strings.ToLower(id), nil
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Missing or invalid authorization token")
	}

	return claims, nil
}

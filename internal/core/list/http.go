// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

import (
	"net/http"

	"github.com/taibuivan/todo/internal/platform/apperr"
	requestutil "github.com/taibuivan/todo/internal/platform/request"
	"github.com/taibuivan/todo/internal/platform/router"
	"github.com/taibuivan/todo/internal/platform/validate"
	"github.com/taibuivan/todo/pkg/pointer"
)

// Handler implements the list HTTP endpoints.
type Handler struct {
	listService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{listService: service}
}

// RegisterRoutes mounts the endpoints on the versioned route table.
//
// # Endpoints
//   - GET    /lists     : Lists all lists, newest first.
//   - POST   /lists     : Creates a list.
//   - GET    /lists/:id : Returns one list.
//   - PATCH  /lists/:id : Partially updates a list.
//   - DELETE /lists/:id : Deletes a list and its tasks.
func (handler *Handler) RegisterRoutes(routes *router.Router) {
	routes.Get("/lists", handler.listAll)
	routes.Post("/lists", handler.create, router.RequireJSON())
	routes.Get("/lists/:id", handler.get)
	routes.Patch("/lists/:id", handler.update, router.RequireJSON())
	routes.Delete("/lists/:id", handler.delete)
}

var listRules = validate.Rules(
	validate.Field(FieldName, validate.Required(), validate.String(), validate.MaxLength(255), validate.NotEmpty()),
	validate.Field(FieldDescription, validate.String(), validate.MaxLength(1000)),
)

func (handler *Handler) listAll(request *http.Request, _ router.Params) (router.Response, error) {
	lists, err := handler.listService.ListAll(request.Context())
	if err != nil {
		return router.Response{}, err
	}
	return router.OK(lists), nil
}

/*
create handles POST /api/v1/lists.

Response:
  - 201: List
  - 400: INVALID_JSON or VALIDATION_ERROR
*/
func (handler *Handler) create(request *http.Request, _ router.Params) (router.Response, error) {
	data, err := requestutil.DecodeObject(request)
	if err != nil {
		return router.Response{}, err
	}

	validate.SanitizeFields(data, FieldName, FieldDescription)

	checker := validate.New()
	if !checker.Validate(data, listRules) {
		return router.Response{}, checker.Err()
	}

	created, err := handler.listService.Create(request.Context(), CreateInput{
		Name:        data[FieldName].(string),
		Description: optionalString(data, FieldDescription),
	})
	if err != nil {
		return router.Response{}, err
	}

	return router.Created(created), nil
}

func (handler *Handler) get(request *http.Request, params router.Params) (router.Response, error) {
	id, err := requestutil.ParseID(params, "id", "list")
	if err != nil {
		return router.Response{}, err
	}

	found, err := handler.listService.Get(request.Context(), id)
	if err != nil {
		return router.Response{}, err
	}

	return router.OK(found), nil
}

/*
update handles PATCH /api/v1/lists/:id.

Only the supplied fields are validated and written. A null value leaves the
column unchanged.

Response:
  - 200: List
  - 400: INVALID_UUID, INVALID_JSON or VALIDATION_ERROR
  - 404: List not found
*/
func (handler *Handler) update(request *http.Request, params router.Params) (router.Response, error) {
	id, err := requestutil.ParseID(params, "id", "list")
	if err != nil {
		return router.Response{}, err
	}

	data, err := requestutil.DecodeObject(request)
	if err != nil {
		return router.Response{}, err
	}

	if len(data) == 0 {
		return router.Response{}, apperr.ValidationError("At least one field must be provided", nil)
	}

	validate.SanitizeFields(data, FieldName, FieldDescription)

	checker := validate.New()
	if !checker.Validate(data, listRules.Only(data)) {
		return router.Response{}, checker.Err()
	}

	updated, err := handler.listService.Update(request.Context(), id, Changes{
		Name:        optionalString(data, FieldName),
		Description: optionalString(data, FieldDescription),
	})
	if err != nil {
		return router.Response{}, err
	}

	return router.OK(updated), nil
}

func (handler *Handler) delete(request *http.Request, params router.Params) (router.Response, error) {
	id, err := requestutil.ParseID(params, "id", "list")
	if err != nil {
		return router.Response{}, err
	}

	if err := handler.listService.Delete(request.Context(), id); err != nil {
		return router.Response{}, err
	}

	return router.NoContent(), nil
}

// optionalString returns a pointer to a validated string field, or nil when
// the key is absent or null.
func optionalString(data map[string]any, field string) *string {
	value, ok := data[field].(string)
	if !ok {
		return nil
	}
	return pointer.To(value)
}

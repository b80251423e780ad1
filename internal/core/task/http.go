// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"
	"time"

	"github.com/taibuivan/todo/internal/platform/apperr"
	requestutil "github.com/taibuivan/todo/internal/platform/request"
	"github.com/taibuivan/todo/internal/platform/router"
	"github.com/taibuivan/todo/internal/platform/validate"
	"github.com/taibuivan/todo/pkg/pointer"
	"github.com/taibuivan/todo/pkg/slice"
)

// Handler implements the task HTTP endpoints.
type Handler struct {
	taskService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{taskService: service}
}

// RegisterRoutes mounts the endpoints on the versioned route table.
//
// # Endpoints
//   - GET    /lists/:listId/tasks : Tasks of one list, newest first.
//   - POST   /lists/:listId/tasks : Creates a task in the list.
//   - GET    /tasks/:id           : Returns one task.
//   - PATCH  /tasks/:id           : Partially updates a task.
//   - DELETE /tasks/:id           : Deletes a task.
func (handler *Handler) RegisterRoutes(routes *router.Router) {
	routes.Get("/lists/:listId/tasks", handler.listByList)
	routes.Post("/lists/:listId/tasks", handler.create, router.RequireJSON())
	routes.Get("/tasks/:id", handler.get)
	routes.Patch("/tasks/:id", handler.update, router.RequireJSON())
	routes.Delete("/tasks/:id", handler.delete)
}

var taskRules = validate.Rules(
	validate.Field(FieldTitle, validate.Required(), validate.String(), validate.MaxLength(255), validate.NotEmpty()),
	validate.Field(FieldDescription, validate.String(), validate.MaxLength(2000)),
	validate.Field(FieldCompleted, validate.Boolean()),
	validate.Field(FieldDueDate, validate.Datetime()),
	validate.Field(FieldPriority, validate.Enum(PriorityLow, PriorityMedium, PriorityHigh)),
	validate.Field(FieldCategories, validate.Array(), validate.MaxItems(10), validate.ArrayItemMaxLength(50)),
)

var sanitizedFields = []string{FieldTitle, FieldDescription, FieldPriority, FieldCategories}

func (handler *Handler) listByList(request *http.Request, params router.Params) (router.Response, error) {
	listID, err := requestutil.ParseID(params, "listId", "list")
	if err != nil {
		return router.Response{}, err
	}

	tasks, err := handler.taskService.ListByList(request.Context(), listID)
	if err != nil {
		return router.Response{}, err
	}
	return router.OK(tasks), nil
}

/*
create handles POST /api/v1/lists/:listId/tasks.

Response:
  - 201: Task
  - 400: INVALID_UUID, INVALID_JSON or VALIDATION_ERROR
  - 404: List not found
*/
func (handler *Handler) create(request *http.Request, params router.Params) (router.Response, error) {
	listID, err := requestutil.ParseID(params, "listId", "list")
	if err != nil {
		return router.Response{}, err
	}

	data, err := requestutil.DecodeObject(request)
	if err != nil {
		return router.Response{}, err
	}

	validate.SanitizeFields(data, sanitizedFields...)

	checker := validate.New()
	if !checker.Validate(data, taskRules) {
		return router.Response{}, checker.Err()
	}

	categories, err := stringList(data)
	if err != nil {
		return router.Response{}, err
	}

	input := CreateInput{
		Title:       data[FieldTitle].(string),
		Description: optionalString(data, FieldDescription),
		DueDate:     optionalTime(data, FieldDueDate),
		Priority:    optionalString(data, FieldPriority),
		Categories:  []string{},
	}
	if completed, ok := data[FieldCompleted].(bool); ok {
		input.Completed = completed
	}
	if categories != nil {
		input.Categories = *categories
	}

	created, err := handler.taskService.Create(request.Context(), listID, input)
	if err != nil {
		return router.Response{}, err
	}

	return router.Created(created), nil
}

func (handler *Handler) get(request *http.Request, params router.Params) (router.Response, error) {
	id, err := requestutil.ParseID(params, "id", "task")
	if err != nil {
		return router.Response{}, err
	}

	found, err := handler.taskService.Get(request.Context(), id)
	if err != nil {
		return router.Response{}, err
	}
	return router.OK(found), nil
}

/*
update handles PATCH /api/v1/tasks/:id.

Only the supplied fields are validated. A null dueDate or priority clears the
column; a null on any other field leaves it unchanged.

Response:
  - 200: Task
  - 400: INVALID_UUID, INVALID_JSON or VALIDATION_ERROR
  - 404: Task not found
*/
func (handler *Handler) update(request *http.Request, params router.Params) (router.Response, error) {
	id, err := requestutil.ParseID(params, "id", "task")
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

	validate.SanitizeFields(data, sanitizedFields...)

	checker := validate.New()
	if !checker.Validate(data, taskRules.Only(data)) {
		return router.Response{}, checker.Err()
	}

	categories, err := stringList(data)
	if err != nil {
		return router.Response{}, err
	}

	changes := Changes{
		Title:       optionalString(data, FieldTitle),
		Description: optionalString(data, FieldDescription),
		Categories:  categories,
	}
	if completed, ok := data[FieldCompleted].(bool); ok {
		changes.Completed = pointer.To(completed)
	}
	if _, present := data[FieldDueDate]; present {
		changes.DueDate = SetTo(optionalTime(data, FieldDueDate))
	}
	if _, present := data[FieldPriority]; present {
		changes.Priority = SetTo(optionalString(data, FieldPriority))
	}

	updated, err := handler.taskService.Update(request.Context(), id, changes)
	if err != nil {
		return router.Response{}, err
	}

	return router.OK(updated), nil
}

func (handler *Handler) delete(request *http.Request, params router.Params) (router.Response, error) {
	id, err := requestutil.ParseID(params, "id", "task")
	if err != nil {
		return router.Response{}, err
	}

	if err := handler.taskService.Delete(request.Context(), id); err != nil {
		return router.Response{}, err
	}
	return router.NoContent(), nil
}

// # Field Extraction

// optionalString returns the string at field, or nil when absent or null.
func optionalString(data map[string]any, field string) *string {
	value, ok := data[field].(string)
	if !ok {
		return nil
	}
	return pointer.To(value)
}

// optionalTime parses an already validated datetime field.
func optionalTime(data map[string]any, field string) *time.Time {
	value, ok := data[field].(string)
	if !ok {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return pointer.To(parsed)
}

// stringList converts the categories array. The column holds text only, so
// a non-string element is a validation failure.
func stringList(data map[string]any) (*[]string, error) {
	items, ok := data[FieldCategories].([]any)
	if !ok {
		return nil, nil
	}

	categories, ok := slice.Strings(items)
	if !ok {
		message := FieldCategories + " items must be strings"
		return nil, apperr.ValidationError(message, map[string][]string{FieldCategories: {message}})
	}
	return &categories, nil
}

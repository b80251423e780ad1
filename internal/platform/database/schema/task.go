package schema

// TaskTable represents the 'tasks' table
type TaskTable struct {
	Table       string
	ID          string
	ListID      string
	Title       string
	Description string
	Completed   string
	DueDate     string
	Priority    string
	Categories  string
	CreatedAt   string
	UpdatedAt   string
}

// Task is the schema definition for tasks
var Task = TaskTable{
	Table:       "tasks",
	ID:          "id",
	ListID:      "list_id",
	Title:       "title",
	Description: "description",
	Completed:   "completed",
	DueDate:     "due_date",
	Priority:    "priority",
	Categories:  "categories",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t TaskTable) Columns() []string {
	return []string{
		t.ID, t.ListID, t.Title, t.Description, t.Completed,
		t.DueDate, t.Priority, t.Categories, t.CreatedAt, t.UpdatedAt,
	}
}

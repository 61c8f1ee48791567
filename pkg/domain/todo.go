package domain

// Todo represents a single persisted todo item
type Todo struct {
	ID          int64  `json:"id" msgpack:"id"`
	Description string `json:"description" msgpack:"description"`
	Done        bool   `json:"done" msgpack:"done"`
}

// NewTodo is the request-shaped subset of Todo used for creation
type NewTodo struct {
	Description string `json:"description"`
}

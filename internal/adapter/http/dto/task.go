package dto

type TaskItem struct {
	ID          uint64  `json:"id"`
	UserID      uint64  `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// TaskRequest is the body of both POST /tasks and PUT /tasks/:id. A PUT replaces the whole
// record, so omitted optional fields are cleared or defaulted.
type TaskRequest struct {
	Title       string  `json:"title" binding:"required,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      string  `json:"status" binding:"omitempty,oneof=todo in-progress done canceled"`
	UserID      *uint64 `json:"user_id" binding:"omitempty,gt=0"`
}

type SuggestPriorityRequest struct {
	Description string `json:"description"`
}

type SuggestPriorityResponse struct {
	Priority string `json:"priority"`
}

package response

import "todoapi/internal/core/domain"

type TodoResponse struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func NewTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        todo.ID,
		Text:      todo.Text,
		Completed: todo.Status.Completed(),
	}
}

// CsrfTokenResponse mirrors the token fetch contract: the client echoes the
// value back under the named header on every state-changing request.
type CsrfTokenResponse struct {
	CsrfTokenHeaderName string `json:"csrfTokenHeaderName"`
	CsrfTokenValue      string `json:"csrfTokenValue"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

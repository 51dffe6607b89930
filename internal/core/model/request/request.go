package request

type SignupRequest struct {
	UserName string `json:"userName,omitempty" validate:"required,max=100"`
	Password string `json:"password,omitempty" validate:"required,max=100"`
}

type LoginRequest struct {
	UserName string `json:"userName,omitempty" validate:"required,max=100"`
	Password string `json:"password,omitempty" validate:"required,max=100"`
}

type PostTodoRequest struct {
	Text string `json:"text,omitempty" validate:"required,max=255"`
}

// Completed is a pointer so a missing field and an explicit false are
// distinguishable; required rejects only the former.
type PutTodoRequest struct {
	Completed *bool `json:"completed,omitempty" validate:"required"`
}

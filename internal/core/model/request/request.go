package request

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100,notpassword"`
	Age      int    `json:"age,omitempty" validate:"min=0"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is the full profile allow-list. Decoded strictly, so any
// field outside it rejects the request.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitnil,notblank,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitnil,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitnil,min=6,max=100,notpassword"`
	Age      *int    `json:"age,omitempty" validate:"omitnil,min=0"`
}

type TaskRequest struct {
	Description string `json:"description" validate:"required,notblank,max=1000"`
	Completed   bool   `json:"completed,omitempty"`
}

// UpdateTaskRequest is the task allow-list, decoded strictly like
// UpdateUserRequest.
type UpdateTaskRequest struct {
	Description *string `json:"description,omitempty" validate:"omitnil,notblank,max=1000"`
	Completed   *bool   `json:"completed,omitempty"`
}

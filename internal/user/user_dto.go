package user

type UpdateUserRequest struct {
	Name     string `json:"name" binding:"omitempty,max=150"`
	Role     string `json:"role" binding:"omitempty,max=50"`
	IsActive *bool  `json:"is_active"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	IsActive   bool    `json:"is_active"`
}

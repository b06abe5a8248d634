package dto

type CreateClassRequest struct {
	ClassName string `json:"class_name" binding:"required"`
}

type CreateClassResponse struct {
	Success   bool   `json:"success"`
	ClassName string `json:"class_name"`
	Path      string `json:"path"`
}

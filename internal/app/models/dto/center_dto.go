package dto

// ProvisionCenterRequest creates a center together with its login account
type ProvisionCenterRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UploadResponse returns the public URL of a stored file
type UploadResponse struct {
	URL string `json:"url"`
}

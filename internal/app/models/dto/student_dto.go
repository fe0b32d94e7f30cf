package dto

// CreateStudentRequest represents a new admission record. A caller-supplied
// status is accepted by the binding but ignored: records always start Pending.
type CreateStudentRequest struct {
	Name          string `json:"name" binding:"required"`
	FatherName    string `json:"fatherName" binding:"required"`
	Course        string `json:"course" binding:"required"`
	AdmissionDate string `json:"admissionDate" binding:"required"`
	Mobile        string `json:"mobile" binding:"required"`
	Address       string `json:"address"`
	Gender        string `json:"gender"`
	DOB           string `json:"dob"`
	PhotoURL      string `json:"photoUrl"`
	SignatureURL  string `json:"signatureUrl"`
	Status        string `json:"status"`
	CenterID      string `json:"centerId"`
}

// UpdateStudentRequest is a partial field set keyed by the application's
// JSON field names; unknown names are rejected by the service.
type UpdateStudentRequest map[string]interface{}

// ExportStudentsRequest selects the records to export
type ExportStudentsRequest struct {
	StudentIDs []string `json:"studentIds" binding:"required,min=1"`
}

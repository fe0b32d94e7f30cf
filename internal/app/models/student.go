package models

// Student defines a student admission record based on the 'students' table.
// Records are created with StatusPending; the admin role moves status, the
// owning center edits the remaining fields.
type Student struct {
	ID            string        `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	FatherName    string        `json:"fatherName" db:"father_name"`
	Course        string        `json:"course" db:"course"`
	AdmissionDate string        `json:"admissionDate" db:"admission_date"`
	Mobile        string        `json:"mobile" db:"mobile"`
	Address       string        `json:"address" db:"address"`
	Gender        string        `json:"gender" db:"gender"`
	DOB           string        `json:"dob" db:"dob"`
	PhotoURL      string        `json:"photoUrl" db:"photo_url"`
	SignatureURL  string        `json:"signatureUrl" db:"signature_url"`
	Status        StudentStatus `json:"status" db:"status"`
	CenterID      string        `json:"centerId" db:"center_id"`
}

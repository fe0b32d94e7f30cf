package dto

// CenterAdmissionCount is one bar of the admissions-by-center chart
type CenterAdmissionCount struct {
	CenterID   string `json:"centerId"`
	CenterName string `json:"centerName"`
	Count      int64  `json:"count"`
}

// CourseAdmissionCount is one bar of the admissions-by-course chart
type CourseAdmissionCount struct {
	Course string `json:"course"`
	Count  int64  `json:"count"`
}

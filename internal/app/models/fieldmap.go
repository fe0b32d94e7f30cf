package models

// Static field-name translation between the application's JSON field names
// and the database column names. Declared explicitly per entity instead of
// being derived by a runtime string transformation; the tests verify the
// tables stay bijective and in sync with the struct tags.

// StudentFieldColumns maps Student JSON field names to their columns.
// The id field is deliberately absent: it is never part of an update set.
var StudentFieldColumns = map[string]string{
	"name":          "name",
	"fatherName":    "father_name",
	"course":        "course",
	"admissionDate": "admission_date",
	"mobile":        "mobile",
	"address":       "address",
	"gender":        "gender",
	"dob":           "dob",
	"photoUrl":      "photo_url",
	"signatureUrl":  "signature_url",
	"status":        "status",
	"centerId":      "center_id",
}

// StudentColumnFields is the inverse of StudentFieldColumns.
var StudentColumnFields = invert(StudentFieldColumns)

// CenterFieldColumns maps Center JSON field names to their columns.
var CenterFieldColumns = map[string]string{
	"name":     "name",
	"location": "location",
}

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

package domain

// Table field names written by the submission form.
const (
	FieldSubmitterName = "SubmitForm_Name"
	FieldSubmitterMail = "SubmitForm_Email"
	FieldThreeWords    = "SubmitForm_ThreeWords"
	FieldTitle         = "Title"
	FieldStandard      = "Standard"
	FieldSubmitType    = "SubmitForm_Type"
	FieldQuicktake     = "Quicktake"
	FieldDetails       = "Details"
)

// SubmissionFields lists every field a submission may carry, in form order.
var SubmissionFields = []string{
	FieldSubmitterName,
	FieldSubmitterMail,
	FieldThreeWords,
	FieldTitle,
	FieldStandard,
	FieldSubmitType,
	FieldQuicktake,
	FieldDetails,
}

// Categories offered by the submission form's type picker.
var Categories = []string{"Taste", "Technique", "Tool", "Toy"}

// IsSubmissionField reports whether name may be written by a submission.
func IsSubmissionField(name string) bool {
	for _, f := range SubmissionFields {
		if f == name {
			return true
		}
	}
	return false
}

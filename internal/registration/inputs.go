package registration

import "github.com/pitb-dev/wwh-gateway/pkg/upstream"

// PersonalInput carries the demographic fields of the shared personal
// resource. Field validation happens at the API boundary; the updater submits
// whatever it is given.
type PersonalInput struct {
	Name              string
	FatherName        string
	PermanentAddress  string
	CurrentAddress    string
	Phone             string
	Mobile            string
	Email             string
	CNIC              string
	DateOfBirth       string
	IssueDate         string
	ExpiryDate        string
	Disability        string
	DisabilityDetails string
	PlaceOfIssue      string
	MaritalStatus     string

	Profile *upstream.FileUpload
}

func (in PersonalInput) fields() map[string]string {
	return map[string]string{
		"name":               in.Name,
		"fname":              in.FatherName,
		"paddress":           in.PermanentAddress,
		"caddress":           in.CurrentAddress,
		"phone_no":           in.Phone,
		"mobile":             in.Mobile,
		"email":              in.Email,
		"cnic":               in.CNIC,
		"dob":                in.DateOfBirth,
		"issue_date":         in.IssueDate,
		"expiry_date":        in.ExpiryDate,
		"disability":         in.Disability,
		"disability_details": in.DisabilityDetails,
		"place_issue":        in.PlaceOfIssue,
		"marital_status":     in.MaritalStatus,
	}
}

// EmploymentInput carries the employment fields embedded in the personal
// resource.
type EmploymentInput struct {
	Education  string
	Discipline string
	Salary     string
	PostHeld   string
	JobJoining string
	JobType    string
	BPS        string
	JobDetails string
	JobRoutine string
	ShiftStart string
	ShiftEnd   string
}

func (in EmploymentInput) fields() map[string]string {
	return map[string]string{
		"education":   in.Education,
		"discipline":  in.Discipline,
		"salary":      in.Salary,
		"post_held":   in.PostHeld,
		"job_joining": in.JobJoining,
		"job_type":    in.JobType,
		"bps":         in.BPS,
		"job_details": in.JobDetails,
		"job_routine": in.JobRoutine,
		"ss_time":     in.ShiftStart,
		"se_time":     in.ShiftEnd,
	}
}

// HostelInput carries the hostel-preference fields embedded in the personal
// resource.
type HostelInput struct {
	AppliedDistrict string
	Institute       string
	AppliedDate     string
	RoomPreference  string
}

func (in HostelInput) fields() map[string]string {
	return map[string]string{
		"applied_district": in.AppliedDistrict,
		"institute":        in.Institute,
		"applied_date":     in.AppliedDate,
		"room_preference":  in.RoomPreference,
	}
}

// GuardianInput carries guardian and emergency-contact fields, keyed by the
// resolved personal_id at submission time.
type GuardianInput struct {
	Name         string
	Relationship string
	Address      string
	Mobile       string
	Occupation   string
	Email        string

	EmergencyName         string
	EmergencyRelationship string
	EmergencyAddress      string
	EmergencyMobile       string
}

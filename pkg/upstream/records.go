package upstream

// PersonalRecord is the central upstream entity: one row per user, holding
// demographic fields plus the embedded employment and hostel-preference
// sections the backend keeps on the same resource. The three pointer fields
// are the sentinels the progress protocol inspects.
type PersonalRecord struct {
	ID int64 `json:"id"`

	Name              string `json:"name"`
	FatherName        string `json:"fname"`
	PermanentAddress  string `json:"paddress"`
	CurrentAddress    string `json:"caddress"`
	Phone             string `json:"phone_no"`
	Mobile            string `json:"mobile"`
	Email             string `json:"email"`
	CNIC              string `json:"cnic"`
	DateOfBirth       string `json:"dob"`
	IssueDate         string `json:"issue_date"`
	ExpiryDate        string `json:"expiry_date"`
	Disability        string `json:"disability"`
	DisabilityDetails string `json:"disability_details"`
	PlaceOfIssue      string `json:"place_issue"`
	MaritalStatus     string `json:"marital_status"`

	Profile *string `json:"profile"`

	Education  string  `json:"education"`
	Discipline string  `json:"discipline"`
	Salary     string  `json:"salary"`
	PostHeld   string  `json:"post_held"`
	JobJoining string  `json:"job_joining"`
	JobType    *string `json:"job_type"`
	BPS        string  `json:"bps"`
	JobDetails string  `json:"job_details"`
	JobRoutine string  `json:"job_routine"`
	ShiftStart string  `json:"ss_time"`
	ShiftEnd   string  `json:"se_time"`

	AppliedDistrict *string `json:"applied_district"`
	Institute       string  `json:"institute"`
	AppliedDate     string  `json:"applied_date"`
	RoomPreference  string  `json:"room_preference"`
}

// GuardianRecord holds guardian and emergency-contact fields, addressed by
// personal_id rather than user_id.
type GuardianRecord struct {
	ID         int64 `json:"id"`
	PersonalID int64 `json:"personal_id"`

	Name         string `json:"gname"`
	Relationship string `json:"relationship"`
	Address      string `json:"gaddress"`
	Mobile       string `json:"gmobile"`
	Occupation   string `json:"goccupation"`
	Email        string `json:"gemail"`

	EmergencyName         string `json:"ename"`
	EmergencyRelationship string `json:"erelationship"`
	EmergencyAddress      string `json:"eaddress"`
	EmergencyMobile       string `json:"emobile"`
}

// DeclarationRecord holds the uploaded declaration attachment reference.
type DeclarationRecord struct {
	ID          int64   `json:"id"`
	PersonalID  int64   `json:"personal_id"`
	Declaration *string `json:"declaration"`
}

// AttachmentRecord is the fixed set of document slots tied to a personal
// record. Slots are nullable server-side filenames; a non-null slot means the
// backend acknowledged an upload for it.
type AttachmentRecord struct {
	ID         int64 `json:"id"`
	PersonalID int64 `json:"personal_id"`

	OriginalApplication  *string `json:"original_application"`
	Permission           *string `json:"permission"`
	IDCard               *string `json:"idcard"`
	AppointmentLetter    *string `json:"app_letter"`
	CharacterCertificate *string `json:"char_certificate"`
	PoliceCertificate    *string `json:"app_certificate"`
	Affidavit            *string `json:"affidavit"`
	Medical              *string `json:"medical"`
	GuardianID           *string `json:"guardian_id"`
	FirstID              *string `json:"first_id"`
	SecondID             *string `json:"second_id"`
	FirstGuarantee       *string `json:"first_guarantee"`
	SecondGuarantee      *string `json:"second_guarantee"`
	Domicile             *string `json:"domicile"`
	Marital              *string `json:"marital"`
}

// SlotNames lists every attachment slot the backend accepts, in display order.
func SlotNames() []string {
	return []string{
		"original_application",
		"permission",
		"idcard",
		"app_letter",
		"char_certificate",
		"app_certificate",
		"affidavit",
		"medical",
		"guardian_id",
		"first_id",
		"second_id",
		"first_guarantee",
		"second_guarantee",
		"domicile",
		"marital",
	}
}

// IsSlot reports whether name is a known attachment slot.
func IsSlot(name string) bool {
	for _, slot := range SlotNames() {
		if slot == name {
			return true
		}
	}
	return false
}

// Slots maps slot name to the stored value, excluding bookkeeping fields.
func (a *AttachmentRecord) Slots() map[string]*string {
	if a == nil {
		return nil
	}
	return map[string]*string{
		"original_application": a.OriginalApplication,
		"permission":           a.Permission,
		"idcard":               a.IDCard,
		"app_letter":           a.AppointmentLetter,
		"char_certificate":     a.CharacterCertificate,
		"app_certificate":      a.PoliceCertificate,
		"affidavit":            a.Affidavit,
		"medical":              a.Medical,
		"guardian_id":          a.GuardianID,
		"first_id":             a.FirstID,
		"second_id":            a.SecondID,
		"first_guarantee":      a.FirstGuarantee,
		"second_guarantee":     a.SecondGuarantee,
		"domicile":             a.Domicile,
		"marital":              a.Marital,
	}
}

// HasAny reports whether at least one slot holds an uploaded document.
func (a *AttachmentRecord) HasAny() bool {
	for _, value := range a.Slots() {
		if value != nil && *value != "" {
			return true
		}
	}
	return false
}

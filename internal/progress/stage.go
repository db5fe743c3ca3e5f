package progress

import "github.com/pitb-dev/wwh-gateway/pkg/upstream"

// Status is the per-stage completion state. Stages only ever move
// NotStarted -> Filled within a snapshot; a later snapshot may read Filled
// stages as NotStarted again if the underlying sentinel field was cleared,
// since every snapshot derives from fresh backend state.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusFilled     Status = "filled"
)

func (s Status) Filled() bool {
	return s == StatusFilled
}

// Snapshot maps each registration stage to its derived status.
type Snapshot struct {
	Personal    Status
	Employment  Status
	Hostel      Status
	Documents   Status
	Declaration Status
}

// Empty is the all-NotStarted snapshot used when the personal record cannot
// be read or has no id.
func Empty() Snapshot {
	return Snapshot{
		Personal:    StatusNotStarted,
		Employment:  StatusNotStarted,
		Hostel:      StatusNotStarted,
		Documents:   StatusNotStarted,
		Declaration: StatusNotStarted,
	}
}

// Derive computes the snapshot from the fetched records. It is pure: each
// stage depends only on its own sentinel fields, never on another stage.
// Nil records leave their stages NotStarted.
func Derive(personal *upstream.PersonalRecord, attachments *upstream.AttachmentRecord, declaration *upstream.DeclarationRecord) Snapshot {
	snapshot := Empty()
	if personal == nil || personal.ID == 0 {
		return snapshot
	}

	if filledField(personal.Profile) {
		snapshot.Personal = StatusFilled
	}
	if filledField(personal.JobType) {
		snapshot.Employment = StatusFilled
	}
	if filledField(personal.AppliedDistrict) {
		snapshot.Hostel = StatusFilled
	}

	if attachments != nil && attachments.HasAny() {
		snapshot.Documents = StatusFilled
	}
	if declaration != nil && filledField(declaration.Declaration) {
		snapshot.Declaration = StatusFilled
	}

	return snapshot
}

func filledField(value *string) bool {
	return value != nil && *value != ""
}

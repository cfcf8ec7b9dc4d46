package records

import (
	"github.com/vibhandikyash/MediCare-BE/constants"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
)

// Followup builds a followup appointment record. It returns ok=false when
// followup_date is absent or unparseable: a followup with a fabricated date
// is worse than a missing one, so this is the one builder that skips instead
// of defaulting.
func (b *Builder) Followup(entry map[string]any) (entity.Followup, bool) {
	date := asDate(entry, "followup_date")
	if date == nil {
		b.Logger.Warn("records.followup.skipped", "reason", "missing or invalid followup_date")
		return entity.Followup{}, false
	}

	status, _ := constants.CanonicalizeFollowupStatus(asString(entry, "status"))

	return entity.Followup{
		FollowupDate:  *date,
		Reason:        asString(entry, "reason"),
		Notes:         asString(entry, "notes"),
		Reminder1Sent: asBool(entry, "reminder1_sent"),
		Reminder2Sent: asBool(entry, "reminder2_sent"),
		Status:        status,
	}, true
}

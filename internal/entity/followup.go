package entity

import "github.com/vibhandikyash/MediCare-BE/constants"

// Followup is a scheduled appointment check-in. Builders never fabricate the
// date: entries without a parseable followup_date are dropped before they
// get here.
type Followup struct {
	FollowupDate  Date                     `json:"followup_date"`
	Reason        string                   `json:"reason,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	Reminder1Sent bool                     `json:"reminder1_sent"`
	Reminder2Sent bool                     `json:"reminder2_sent"`
	Status        constants.FollowupStatus `json:"status"`
}

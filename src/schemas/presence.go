package schemas

import "github.com/harshulchawla1408/Astrousers-sub000/src/models"

// SetAvailabilityRequest toggles one channel flag for the calling advisor.
type SetAvailabilityRequest struct {
	Channel string `json:"channel" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}

// OnlineAdvisor is one entry of the advisors-online snapshot.
type OnlineAdvisor struct {
	AdvisorID    string              `json:"advisor_id"`
	Availability models.Availability `json:"availability"`
}

// OnlineAdvisorsSnapshot is the full current list of online advisors. The
// registry always pushes the whole snapshot, never a diff, so a dropped
// update is corrected by the next one.
type OnlineAdvisorsSnapshot struct {
	Advisors []OnlineAdvisor `json:"advisors"`
}

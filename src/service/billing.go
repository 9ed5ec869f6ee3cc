package service

import "github.com/harshulchawla1408/Astrousers-sub000/src/models"

// FreeTextMinutes is the free allowance applied to text consultations.
// Audio and video bill the full duration.
const FreeTextMinutes = 3

// ComputeBill turns a session duration into billable minutes and the amount
// to debit. Duration is rounded up to whole minutes; a text session within
// the free allowance costs nothing, a longer one bills only the minutes past
// the allowance.
func ComputeBill(channel models.Channel, durationSeconds, ratePerMinute int64) (billableMinutes, amount int64) {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	durationMinutes := (durationSeconds + 59) / 60

	if channel == models.ChannelText {
		if durationMinutes <= FreeTextMinutes {
			return 0, 0
		}
		billableMinutes = durationMinutes - FreeTextMinutes
	} else {
		billableMinutes = durationMinutes
	}

	return billableMinutes, billableMinutes * ratePerMinute
}

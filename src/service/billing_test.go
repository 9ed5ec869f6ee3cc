package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

func TestComputeBill(t *testing.T) {
	tests := []struct {
		name            string
		channel         models.Channel
		durationSeconds int64
		ratePerMinute   int64
		wantMinutes     int64
		wantAmount      int64
	}{
		{"text within free allowance", models.ChannelText, 180, 10, 0, 0},
		{"text one second", models.ChannelText, 1, 10, 0, 0},
		{"text zero duration", models.ChannelText, 0, 10, 0, 0},
		{"text just past allowance", models.ChannelText, 181, 10, 1, 10},
		{"text five minutes", models.ChannelText, 300, 10, 2, 20},
		{"text four minutes rate five", models.ChannelText, 240, 5, 1, 5},
		{"audio bills full duration", models.ChannelAudio, 125, 7, 3, 21},
		{"audio partial minute rounds up", models.ChannelAudio, 61, 7, 2, 14},
		{"video one minute", models.ChannelVideo, 60, 12, 1, 12},
		{"video zero duration", models.ChannelVideo, 0, 12, 0, 0},
		{"negative duration clamps to zero", models.ChannelVideo, -5, 12, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, amount := ComputeBill(tt.channel, tt.durationSeconds, tt.ratePerMinute)
			assert.Equal(t, tt.wantMinutes, minutes, "billable minutes")
			assert.Equal(t, tt.wantAmount, amount, "amount")
		})
	}
}

package slurm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const licOutput = `LicenseName=abaqus.abaqus@flexlm
    Total=1000 Used=23 Free=977 Reserved=0 Remote=yes
LicenseName=converge.converge_super@rlm
    Total=500 Used=120 Free=380 Reserved=0 Remote=yes
LicenseName=local_gpu
    Total=8 Used=2 Free=6 Reserved=0 Remote=no
`

func TestParseLicensePools(t *testing.T) {
	pools := ParseLicensePools(licOutput)
	require.Len(t, pools, 3)

	abaqus := pools["abaqus.abaqus"]
	assert.Equal(t, "flexlm", abaqus.ServerType)
	assert.Equal(t, 1000, abaqus.Total)
	assert.Equal(t, 23, abaqus.Used)
	assert.Equal(t, 977, abaqus.Free)
	assert.True(t, abaqus.Remote)

	local := pools["local_gpu"]
	assert.Equal(t, "", local.ServerType)
	assert.False(t, local.Remote)
}

func TestParseLicensePoolsEmptyInput(t *testing.T) {
	assert.Empty(t, ParseLicensePools(""))
	assert.Empty(t, ParseLicensePools("No licenses configured in Slurm.\n"))
}

func TestParseQueue(t *testing.T) {
	raw := "101|5:30|RUNNING\n102|1:02:03|RUNNING\n103|2-03:04:05|PENDING\n"
	entries, err := ParseQueue(raw)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, QueueEntry{JobID: "101", RuntimeSeconds: 330, State: "RUNNING"}, entries[0])
	assert.Equal(t, 3723, entries[1].RuntimeSeconds)
	assert.Equal(t, 2*86400+3*3600+4*60+5, entries[2].RuntimeSeconds)
	assert.Equal(t, "PENDING", entries[2].State)
}

func TestParseQueueMalformedLine(t *testing.T) {
	for _, raw := range []string{
		"101|5:30",
		"101|5:30|RUNNING|extra",
		"101|garbage|RUNNING",
	} {
		_, err := ParseQueue(raw)
		require.Error(t, err, raw)
		var parseErr *SqueueParseError
		assert.True(t, errors.As(err, &parseErr), raw)
	}
}

func TestParseElapsed(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0:00", 0},
		{"4:27", 267},
		{"59:59", 3599},
		{"1:00:00", 3600},
		{"13:15:00", 47700},
		{"1-00:00:00", 86400},
		{"3-13:15:42", 3*86400 + 13*3600 + 15*60 + 42},
	}
	for _, tt := range tests {
		got, err := ParseElapsed(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "5", "a:b", "1-2", "1:2:3:4"} {
		_, err := ParseElapsed(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseJobLicenses(t *testing.T) {
	raw := "JobId=123 JobName=sim\n   UserId=alice(1000) Licenses=abaqus.abaqus@flexlm:4,converge.super@rlm Nice=0\n"
	bookings, ok := ParseJobLicenses(raw)
	require.True(t, ok)
	require.Len(t, bookings, 2)
	assert.Equal(t, LicenseBooking{ProductFeature: "abaqus.abaqus", ServerType: "flexlm", Quantity: 4}, bookings[0])
	assert.Equal(t, LicenseBooking{ProductFeature: "converge.super", ServerType: "rlm", Quantity: 1}, bookings[1])
}

func TestParseJobLicensesNullAndMissing(t *testing.T) {
	bookings, ok := ParseJobLicenses("JobId=123 Licenses=(null) Nice=0")
	assert.True(t, ok)
	assert.Empty(t, bookings)

	_, ok = ParseJobLicenses("JobId=123 Nice=0")
	assert.False(t, ok)
}

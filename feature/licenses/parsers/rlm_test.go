package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rlmOutput = `Setting license file path to 35015@rlm-server
rlmutil v12.2
Copyright (C) 2006-2017, Reprise Software, Inc. All rights reserved.


	rlm status on rlm-server (port 35015), up 20d 11:10:36
	rlm software version v12.2 (build:2)
	rlm comm version: v1.2
	Startup time: Tue Oct 21 01:40:13 2020
	Todays Statistics (13:48:32), init time: Tue Nov  3 23:52:17
	Recent Statistics (00:16:08), init time: Wed Nov  4 13:24:41

	             Recent Stats         Todays Stats         Total Stats
	              00:16:08             13:48:32         20d 11:10:36
	Messages:    582 (0/sec)           28937 (0/sec)          777647 (0/sec)
	Connections: 463 (0/sec)           23147 (0/sec)          622164 (0/sec)

	--------- ISV servers ----------
	   Name           Port Running Restarts
	csci             63133   Yes      0

	------------------------

	csci ISV server status on port 63133, up 20d 11:10:18
	csci software version v12.2 (build: 2)

	License usage for csci:

	converge_super v3.0
		count: 1000, # reservations: 0, inuse: 93, exp: 31-dec-2020
		obsolete: 0, min_remove: 120, total checkouts: 100

	converge_gui v3.0
		count: 45, # reservations: 0, inuse: 0, exp: 31-dec-2020

	------------------------

	converge_super v3.0: jbemfv@myserver.example.com 29/0 at 11/01 09:01  (handle: 15a)
	converge_super v3.0: cdxfdn@myserver 27 at 11/03 10:38  (handle: 128)
	converge_super v3.0: jbemfv@myserver 37/0 at 11/01 09:01  (handle: 15b)
`

func TestRLMParse(t *testing.T) {
	p, ok := ForServerType(ServerTypeRLM)
	require.True(t, ok)

	result := p.Parse(rlmOutput)
	require.Len(t, result, 2)

	super := result["converge_super"]
	assert.Equal(t, 1000, super.Total)
	assert.Equal(t, 93, super.Used)
	require.Len(t, super.Uses, 3)
	assert.Equal(t, Use{Username: "jbemfv", LeadHost: "myserver", Booked: 29}, super.Uses[0])
	assert.Equal(t, Use{Username: "cdxfdn", LeadHost: "myserver", Booked: 27}, super.Uses[1])
	assert.Equal(t, Use{Username: "jbemfv", LeadHost: "myserver", Booked: 37}, super.Uses[2])

	gui := result["converge_gui"]
	assert.Equal(t, 45, gui.Total)
	assert.Equal(t, 0, gui.Used)
	assert.Empty(t, gui.Uses)
}

func TestRLMUnparseableInput(t *testing.T) {
	p, _ := ForServerType(ServerTypeRLM)
	assert.Empty(t, p.Parse("Setting license file path to 35015@rlm-server\nConnection refused at server (-111)"))
	assert.Empty(t, p.Parse(""))
}

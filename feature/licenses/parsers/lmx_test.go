package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lmxOutput = `lmxendutil - LM-X End-user Utility v3.32
Copyright (C) 2002-2010 X-Formation. All rights reserved.

++++++++++++++++++++++++++++++++++++++++
LM-X License Server on 6200@lmx-server:

Server version: v3.32 Uptime: 2 day(s) 22 hour(s) 5 min(s) 6 sec(s)
----------------------------------------
Feature: CatiaV5Reader Version: 21.0 Vendor: ALTAIR
Start date: NONE Expire date: NONE
Shared on custom string: VRAJYOG

15 of 25 license(s) used:

5 license(s) used by jbemfv@node1 [12.142.33.81]
    Login time: 2017-02-10 14:12   Checkout time: 2017-02-10 14:12

10 license(s) used by cdxfdn@node2.hpc.example.com [12.142.33.82]
    Login time: 2017-02-10 14:12   Checkout time: 2017-02-10 14:12
----------------------------------------
Feature: GlobalZoneEU Version: 21.0 Vendor: ALTAIR
Start date: NONE Expire date: NONE

0 of 1000000 license(s) used
`

func TestLMXParse(t *testing.T) {
	p, ok := ForServerType(ServerTypeLMX)
	require.True(t, ok)

	result := p.Parse(lmxOutput)
	require.Len(t, result, 2)

	reader := result["catiav5reader"]
	assert.Equal(t, 25, reader.Total)
	assert.Equal(t, 15, reader.Used)
	require.Len(t, reader.Uses, 2)
	assert.Equal(t, Use{Username: "jbemfv", LeadHost: "node1", Booked: 5}, reader.Uses[0])
	assert.Equal(t, Use{Username: "cdxfdn", LeadHost: "node2", Booked: 10}, reader.Uses[1])

	zone := result["globalzoneeu"]
	assert.Equal(t, 1000000, zone.Total)
	assert.Equal(t, 0, zone.Used)
	assert.Empty(t, zone.Uses)
}

func TestLMXUnparseableInput(t *testing.T) {
	p, _ := ForServerType(ServerTypeLMX)
	assert.Empty(t, p.Parse("Error: Cannot connect to license server 6200@lmx-server"))
	assert.Empty(t, p.Parse(""))
}

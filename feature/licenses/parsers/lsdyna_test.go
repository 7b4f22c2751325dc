package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lsdynaOutput = `Defaulting to server 1 specified by LSTC_LICENSE_SERVER

                     Running Programs

    User             Host          Program              Started       # procs

     jbemfv     59005@n-c13.maas     MPPDYNA          Fri Oct 29 predates  1
     jbemfv     59005@n-c13.maas     MPPDYNA          Fri Oct 29 predates  1
     sdmfva     59125@n-c52.maas     MPPDYNA          Fri Oct 29 predates  1
No programs queued


                        LICENSE INFORMATION

PROGRAM          EXPIRATION CPUS  USED   FREE    MAX | QUEUE
---------------- ----------      ----- ------ ------ | -----
MPPDYNA          12/30/2121          3    497    500 |     0
LS-DYNA          12/30/2121          -    500    500 |     0
                   LICENSE GROUP   500    500   1000 | 0
`

func TestLSDynaParse(t *testing.T) {
	p, ok := ForServerType(ServerTypeLSDyna)
	require.True(t, ok)

	result := p.Parse(lsdynaOutput)
	require.Len(t, result, 2)

	mpp := result["mppdyna"]
	assert.Equal(t, 500, mpp.Total)
	assert.Equal(t, 3, mpp.Used)
	// One entry per core row; the format has no per-row quantity.
	require.Len(t, mpp.Uses, 3)
	assert.Equal(t, Use{Username: "jbemfv", LeadHost: "n-c13", Booked: 1}, mpp.Uses[0])
	assert.Equal(t, Use{Username: "jbemfv", LeadHost: "n-c13", Booked: 1}, mpp.Uses[1])
	assert.Equal(t, Use{Username: "sdmfva", LeadHost: "n-c52", Booked: 1}, mpp.Uses[2])

	// The used column shows "-" when idle.
	dyna := result["ls-dyna"]
	assert.Equal(t, 500, dyna.Total)
	assert.Equal(t, 0, dyna.Used)
	assert.Empty(t, dyna.Uses)
}

func TestLSDynaUnparseableInput(t *testing.T) {
	p, _ := ForServerType(ServerTypeLSDyna)
	assert.Empty(t, p.Parse("*** ERROR failed to connect to server n-c13\n"))
	assert.Empty(t, p.Parse(""))
}

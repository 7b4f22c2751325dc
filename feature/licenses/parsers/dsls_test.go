package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dslsOutput = `admin > connect dsls-server 4085
Connection established.
admin > getLicenseUsage -csv
Editor,Feature,Model,Count,Inuse,User,Host,Tokens
Dassault Systemes,GHN,Token,50,3,jbemfv,node1.hpc.example.com,2
Dassault Systemes,GHN,Token,50,3,cdxfdn,node2,1
Dassault Systemes,PCS,Token,20,0,,,
admin > quit
`

func TestDSLSParse(t *testing.T) {
	p, ok := ForServerType(ServerTypeDSLS)
	require.True(t, ok)

	result := p.Parse(dslsOutput)
	require.Len(t, result, 2)

	ghn := result["ghn"]
	assert.Equal(t, 50, ghn.Total)
	assert.Equal(t, 3, ghn.Used)
	require.Len(t, ghn.Uses, 2)
	assert.Equal(t, Use{Username: "jbemfv", LeadHost: "node1", Booked: 2}, ghn.Uses[0])
	assert.Equal(t, Use{Username: "cdxfdn", LeadHost: "node2", Booked: 1}, ghn.Uses[1])

	pcs := result["pcs"]
	assert.Equal(t, 20, pcs.Total)
	assert.Equal(t, 0, pcs.Used)
	assert.Empty(t, pcs.Uses)
}

func TestDSLSUnparseableInput(t *testing.T) {
	p, _ := ForServerType(ServerTypeDSLS)
	assert.Empty(t, p.Parse("admin > connect dsls-server 4085\nError: connection refused\n"))
	assert.Empty(t, p.Parse(""))
}

func TestForServerTypeUnknown(t *testing.T) {
	_, ok := ForServerType("sesame")
	assert.False(t, ok)
}

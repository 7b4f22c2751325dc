package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const olicenseOutput = `olixtool 4.8.0 - OLicense XML-RPC Tool
Copyright (C) Optimum GmbH, Karlsruhe, Germany, 2004-2015

Server: olicense-server:31750

  Application:		cosin
  Licenser:		cosin scientific software
  Licensee:		Research Computing

  ftire_adams;	FTire license for MSC.Adams:
    LicenseID:		12345
    FloatCount:		10	(4 in use)
    FloatsLockedBy:
      2*jbemfv@node1.hpc.example.com
      1*cdxfdn@node2.hpc.example.com
      1*cdxfdn@node2.hpc.example.com

  ftire_simulink;	FTire license for Simulink:
    LicenseID:		12346
    FloatCount:		5
`

func TestOLicenseParse(t *testing.T) {
	p, ok := ForServerType(ServerTypeOLicense)
	require.True(t, ok)

	result := p.Parse(olicenseOutput)
	require.Len(t, result, 2)

	adams := result["ftire_adams"]
	assert.Equal(t, 10, adams.Total)
	assert.Equal(t, 4, adams.Used)
	require.Len(t, adams.Uses, 3)
	assert.Equal(t, Use{Username: "jbemfv", LeadHost: "node1", Booked: 2}, adams.Uses[0])
	assert.Equal(t, Use{Username: "cdxfdn", LeadHost: "node2", Booked: 1}, adams.Uses[1])
	assert.Equal(t, Use{Username: "cdxfdn", LeadHost: "node2", Booked: 1}, adams.Uses[2])

	simulink := result["ftire_simulink"]
	assert.Equal(t, 5, simulink.Total)
	assert.Equal(t, 0, simulink.Used)
	assert.Empty(t, simulink.Uses)
}

func TestOLicenseUnparseableInput(t *testing.T) {
	p, _ := ForServerType(ServerTypeOLicense)
	assert.Empty(t, p.Parse("Server: olicense-server:31750\nConnectionError: no reply from server"))
	assert.Empty(t, p.Parse(""))
}

package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteGeometryRoundTrip(t *testing.T) {
	in := `{"type":"LineString","coordinates":[[-1.5,53.8],[-1.52,53.81]]}`

	wkbBytes, err := parseAndConvertGeometry(in)
	require.NoError(t, err)
	require.NotEmpty(t, wkbBytes)

	out, err := convertWKBToGeoJSON(wkbBytes)
	require.NoError(t, err)
	assert.JSONEq(t, in, out)
}

func TestRouteGeometryRejectsOtherShapes(t *testing.T) {
	_, err := parseAndConvertGeometry(`{"type":"Point","coordinates":[-1.5,53.8]}`)
	assert.Error(t, err)

	_, err = parseAndConvertGeometry(`not json`)
	assert.Error(t, err)

	b, err := parseAndConvertGeometry("")
	require.NoError(t, err)
	assert.Nil(t, b)

	s, err := convertWKBToGeoJSON(nil)
	require.NoError(t, err)
	assert.Empty(t, s)
}

package main

import (
	"flag"
	"image"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointListFlag(t *testing.T) {
	var clicks pointList
	fs := flag.NewFlagSet("app", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&clicks, "click", "")

	require.NoError(t, fs.Parse([]string{"-click", "5,5", "-click", " 105 , 5 "}))
	assert.Equal(t, pointList{image.Pt(5, 5), image.Pt(105, 5)}, clicks)
	assert.Equal(t, "5,5 105,5", clicks.String())

	for _, bad := range []string{"5", "a,5", "5,b", ""} {
		var l pointList
		assert.Error(t, l.Set(bad), bad)
	}
}

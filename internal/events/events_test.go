package events

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_WithHeaderAndCounts(t *testing.T) {
	t.Parallel()

	in := "x,y,count\n3,4,2\n0,0,1\n7,1\n"
	evs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	want := []Event{
		{X: 3, Y: 4, Count: 2},
		{X: 0, Y: 0, Count: 1},
		{X: 7, Y: 1, Count: 1}, // missing count defaults to 1
	}
	if diff := cmp.Diff(want, evs); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSV_NoHeader(t *testing.T) {
	t.Parallel()

	evs, err := ReadCSV(strings.NewReader("1,2,5\n"))
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, Event{X: 1, Y: 2, Count: 5}, evs[0])
}

func TestReadCSV_BadRows(t *testing.T) {
	t.Parallel()

	cases := []string{
		"x,y,count\nfoo,2,1\n", // non-numeric x past the header
		"1,bar\n",
		"1,2,-3\n",
		"x,y,count\n5\n",
	}
	for _, in := range cases {
		_, err := ReadCSV(strings.NewReader(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	t.Parallel()

	evs := []Event{{X: 2, Y: 9, Count: 4}, {X: 0, Y: 1, Count: 1}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, evs))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(evs, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRasterize(t *testing.T) {
	t.Parallel()

	evs := []Event{
		{X: 1, Y: 1, Count: 2},
		{X: 1, Y: 1, Count: 3}, // accumulates
		{X: 0, Y: 3, Count: 1},
		{X: -1, Y: 0, Count: 1}, // outside
		{X: 4, Y: 9, Count: 1},  // outside
	}
	g, dropped := Rasterize(evs, 4, 4)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, uint32(5), g.At(1, 1))
	assert.Equal(t, uint32(1), g.At(0, 3))
	assert.Equal(t, uint32(0), g.At(2, 2))
}

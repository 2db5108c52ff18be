package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meshbound/blockproto/internal/nbt"
)

func TestPosition_Fixture(t *testing.T) {
	p := Position{X: 1, Z: 2, Y: 3}
	v, err := EncodePosition(p)
	require.NoError(t, err)
	require.Equal(t, int64(1)<<38|int64(2)<<12|int64(3), v)
	require.Equal(t, p, DecodePosition(v))
}

func TestPosition_RoundTrip_Range(t *testing.T) {
	cases := []Position{
		{X: 0, Z: 0, Y: 0},
		{X: posXZMin, Z: posXZMin, Y: posYMin},
		{X: posXZMax, Z: posXZMax, Y: posYMax},
		{X: -1, Z: -1, Y: -1},
	}
	for _, p := range cases {
		v, err := EncodePosition(p)
		require.NoError(t, err)
		require.Equal(t, p, DecodePosition(v))
	}
}

func TestPosition_RejectsOutOfRange(t *testing.T) {
	_, err := EncodePosition(Position{X: posXZMax + 1, Z: 0, Y: 0})
	var fr *FieldOutOfRange
	require.ErrorAs(t, err, &fr)
}

func TestPosition_WireRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	p := Position{X: -12345, Z: 678, Y: -900}
	require.NoError(t, WritePosition(&buf, p))
	got, err := ReadPosition(&buf)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestBitSet_SetGet(t *testing.T) {
	b := NewBitSet(200)
	set := []int{0, 1, 63, 64, 65, 127, 199}
	for _, i := range set {
		b.Set(i)
	}
	want := make(map[int]bool)
	for _, i := range set {
		want[i] = true
	}
	for i := 0; i < 200; i++ {
		require.Equal(t, want[i], b.Get(i), "bit %d", i)
	}
}

func TestBitSet_WireRoundTrip(t *testing.T) {
	b := NewBitSet(130)
	b.Set(5)
	b.Set(129)

	var buf bytes.Buffer
	require.NoError(t, WriteBitSet(&buf, b))

	got, err := ReadBitSet(&buf)
	require.NoError(t, err)
	require.Equal(t, b.Words(), got.Words())
	for i := 0; i < 130; i++ {
		require.Equal(t, b.Get(i), got.Get(i))
	}
}

func TestBlockEntity_WireRoundTrip(t *testing.T) {
	data := nbt.NewCompound("")
	data.Set("Text1", nbt.String(`{"text":"hi"}`))

	be := BlockEntity{X: 15, Z: 0, Y: 64, Type: 7, Data: data}

	var buf bytes.Buffer
	require.NoError(t, WriteBlockEntity(&buf, be))

	got, err := ReadBlockEntity(&buf)
	require.NoError(t, err)
	require.Equal(t, be.X, got.X)
	require.Equal(t, be.Z, got.Z)
	require.Equal(t, be.Y, got.Y)
	require.Equal(t, be.Type, got.Type)
	require.True(t, be.Data.Equal(got.Data))
}

// TestBlockEntity_SignFixture exercises a sign block entity carrying the
// full four-line Text1..Text4 property set, the nested-compound shape
// SPEC_FULL.md's supplemented-features section calls out.
func TestBlockEntity_SignFixture(t *testing.T) {
	data := nbt.NewCompound("")
	data.Set("Text1", nbt.String(`{"text":"hello"}`))
	data.Set("Text2", nbt.String(`{"text":"from"}`))
	data.Set("Text3", nbt.String(`{"text":"a"}`))
	data.Set("Text4", nbt.String(`{"text":"sign"}`))
	data.Set("Color", nbt.String("black"))
	data.Set("GlowingText", nbt.Byte(0))

	be := BlockEntity{X: 13, Z: 8, Y: -12, Type: 7, Data: data}

	var buf bytes.Buffer
	require.NoError(t, WriteBlockEntity(&buf, be))

	got, err := ReadBlockEntity(&buf)
	require.NoError(t, err)
	require.Equal(t, be.X, got.X)
	require.Equal(t, be.Z, got.Z)
	require.Equal(t, be.Y, got.Y)
	require.Equal(t, be.Type, got.Type)
	require.Equal(t, 6, got.Data.Len())
	require.True(t, be.Data.Equal(got.Data))

	v, ok := got.Data.Get("Text3")
	require.True(t, ok)
	s, ok := v.AsString()
	require.True(t, ok)
	require.Equal(t, `{"text":"a"}`, s)
}

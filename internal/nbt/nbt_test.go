package nbt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixture from spec.md 8.2 #1: a compound named "hello world" with one
// String property "meme" = "Bananrama".
func helloWorldFixture() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(TagCompound))
	buf.Write([]byte{0x00, 0x0b})
	buf.WriteString("hello world")
	buf.WriteByte(byte(TagString))
	buf.Write([]byte{0x00, 0x04})
	buf.WriteString("meme")
	buf.Write([]byte{0x00, 0x09})
	buf.WriteString("Bananrama")
	buf.WriteByte(byte(TagEnd))
	return buf.Bytes()
}

func TestReadCompound_HelloWorldFixture(t *testing.T) {
	in := helloWorldFixture()

	c, err := ReadCompound(bytes.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, "hello world", c.Name())
	require.Equal(t, 1, c.Len())

	v, ok := c.Get("meme")
	require.True(t, ok)
	require.Equal(t, TagString, v.ID())
	s, _ := v.AsString()
	require.Equal(t, "Bananrama", s)
}

func TestWriteCompound_HelloWorldFixture_RoundTrips(t *testing.T) {
	in := helloWorldFixture()
	c, err := ReadCompound(bytes.NewReader(in))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteCompound(&out, c))
	require.Equal(t, in, out.Bytes())
}

func TestCompound_RoundTrip_CanonicalOrder(t *testing.T) {
	c := NewCompound("root")
	c.Set("a", Int(1))
	c.Set("b", String("two"))
	c.Set("c", Double(3.5))

	var buf bytes.Buffer
	require.NoError(t, WriteCompound(&buf, c))

	got, err := ReadCompound(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.True(t, c.Equal(got))

	var buf2 bytes.Buffer
	require.NoError(t, WriteCompound(&buf2, got))
	require.Equal(t, buf.Bytes(), buf2.Bytes())
}

func TestCompound_Set_LatestValueWins(t *testing.T) {
	c := NewCompound("")
	c.Set("x", Int(1))
	c.Set("x", Int(2))
	require.Equal(t, 1, c.Len())
	v, ok := c.Get("x")
	require.True(t, ok)
	n, _ := v.AsInt()
	require.Equal(t, int32(2), n)
}

func TestList_Homogeneous(t *testing.T) {
	items := []Tag{Int(1), Int(2), Int(3)}
	l, err := NewList(TagInt, items)
	require.NoError(t, err)
	require.Equal(t, 3, l.Len())

	_, err = NewList(TagInt, []Tag{Int(1), String("oops")})
	require.Error(t, err)
}

func TestList_EmptyListRetainsElementTagOnDecode(t *testing.T) {
	c := NewCompound("root")
	empty, err := NewList(TagByte, nil)
	require.NoError(t, err)
	c.Set("empty", ListTag(empty))

	var buf bytes.Buffer
	require.NoError(t, WriteCompound(&buf, c))

	got, err := ReadCompound(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	v, ok := got.Get("empty")
	require.True(t, ok)
	l, ok := v.AsList()
	require.True(t, ok)
	require.Equal(t, TagByte, l.Elem())
	require.Equal(t, 0, l.Len())
}

func TestReadCompound_RejectsNonCompoundRoot(t *testing.T) {
	_, err := ReadCompound(bytes.NewReader([]byte{byte(TagInt)}))
	require.ErrorIs(t, err, ErrBadRootTag)
}

func TestReadPayload_RejectsEndAsValue(t *testing.T) {
	// End is never a value: as a property tag id it terminates the compound,
	// and as the element tag of a non-empty list it is rejected.
	var buf bytes.Buffer
	buf.WriteByte(byte(TagCompound))
	buf.Write([]byte{0x00, 0x00})
	buf.WriteByte(byte(TagEnd)) // property tag id = End: treated as terminator, not an error here
	_, err := ReadCompound(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err) // an immediate End just means an empty compound

	var buf2 bytes.Buffer
	buf2.WriteByte(byte(TagCompound))
	buf2.Write([]byte{0x00, 0x00})
	buf2.WriteByte(byte(TagList))
	buf2.Write([]byte{0x00, 0x01})
	buf2.WriteString("p")
	buf2.WriteByte(byte(TagEnd)) // list element tag id = End, with nonzero length
	buf2.Write([]byte{0x00, 0x00, 0x00, 0x01})
	_, err = ReadCompound(bytes.NewReader(buf2.Bytes()))
	require.ErrorIs(t, err, ErrUnexpectedEndTag)
}

func TestReadPayload_RejectsUnknownTagID(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(TagCompound))
	buf.Write([]byte{0x00, 0x00})
	buf.WriteByte(13) // unknown
	_, err := ReadCompound(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrUnknownTagID)
}

func TestReadPayload_RejectsNegativeArrayLength(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(TagCompound))
	buf.Write([]byte{0x00, 0x00})
	buf.WriteByte(byte(TagIntArray))
	buf.Write([]byte{0x00, 0x01})
	buf.WriteString("p")
	buf.Write([]byte{0xff, 0xff, 0xff, 0xff}) // -1
	_, err := ReadCompound(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrNegativeLength)
}

func TestNestedCompoundAndList(t *testing.T) {
	inner := NewCompound("")
	inner.Set("x", Int(5))

	outerList, err := NewList(TagCompound, []Tag{CompoundTag(inner)})
	require.NoError(t, err)

	root := NewCompound("doc")
	root.Set("children", ListTag(outerList))

	var buf bytes.Buffer
	require.NoError(t, WriteCompound(&buf, root))

	got, err := ReadCompound(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.True(t, root.Equal(got))
}

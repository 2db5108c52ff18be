package world

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meshbound/blockproto/internal/nbt"
	"github.com/meshbound/blockproto/internal/protocol"
)

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	codecs := []Codec{NewZlibCodec(), NewLZ4Codec()}
	for _, codec := range codecs {
		t.Run(codec.Name(), func(t *testing.T) {
			store, err := NewStore(t.TempDir(), codec)
			require.NoError(t, err)

			heightmaps := nbt.NewCompound("")
			heightmaps.Set("MOTION_BLOCKING", nbt.LongArray([]int64{1, 2, 3}))

			col := ChunkColumn{
				X:          12,
				Z:          -7,
				Heightmaps: heightmaps,
				Data:       []byte{1, 2, 3, 4, 5},
				BlockEntities: []protocol.BlockEntity{
					{X: 3, Z: 9, Y: 70, Type: 1, Data: nbt.NewCompound("")},
				},
			}

			require.NoError(t, store.Save(col))

			got, err := store.Load(12, -7)
			require.NoError(t, err)
			require.Equal(t, col.X, got.X)
			require.Equal(t, col.Z, got.Z)
			require.Equal(t, col.Data, got.Data)
			require.True(t, col.Heightmaps.Equal(got.Heightmaps))
			require.Len(t, got.BlockEntities, 1)
			require.Equal(t, col.BlockEntities[0].Type, got.BlockEntities[0].Type)
		})
	}
}

func TestStore_Load_MissingChunk(t *testing.T) {
	store, err := NewStore(t.TempDir(), NewZlibCodec())
	require.NoError(t, err)
	_, err = store.Load(0, 0)
	require.Error(t, err)
}

func TestNewCodec_UnknownName(t *testing.T) {
	_, err := NewCodec("bogus")
	require.Error(t, err)
}

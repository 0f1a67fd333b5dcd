package dormitory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate()
	b := Generate()

	require.Equal(t, len(a.Buildings), len(b.Buildings))
	assert.Equal(t, a.Buildings, b.Buildings)
	assert.Equal(t, a.Rooms(), b.Rooms())
}

func TestGenerateTotals(t *testing.T) {
	c := Generate()

	// 3 standard blocks of 80 rooms, SEROJA with 80, 3 quarters rows of 15.
	assert.Equal(t, 365, c.TotalRooms())
	// 480 standard beds + 136 in SEROJA + 360 quarters beds.
	assert.Equal(t, 976, c.TotalCapacity())
	assert.Len(t, c.Rooms(), 365)
}

func TestGenerateRoomIDsUnique(t *testing.T) {
	c := Generate()

	seen := make(map[string]bool)
	for _, r := range c.Rooms() {
		assert.Falsef(t, seen[r.ID], "duplicate room id %s", r.ID)
		seen[r.ID] = true
	}
	assert.Len(t, seen, 365)
}

func TestBuildingOrder(t *testing.T) {
	c := Generate()

	require.Len(t, c.Buildings, 7)
	names := make([]string, 0, 7)
	for _, b := range c.Buildings {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{
		BlockAnggerik, BlockCempaka, BlockKenanga,
		BlockSeroja,
		RowLestari4, RowLestari5, RowLestari6,
	}, names)
}

func TestStandardBuildingShape(t *testing.T) {
	c := Generate()

	b := c.Buildings[0]
	require.Equal(t, BlockAnggerik, b.Name)
	require.Len(t, b.Floors, 4)

	assert.Equal(t, 0, b.Floors[0].FloorNumber)
	assert.Len(t, b.Floors[0].Rooms, 8)
	assert.Len(t, b.Floors[1].Rooms, 24)
	assert.Len(t, b.Floors[2].Rooms, 24)
	assert.Len(t, b.Floors[3].Rooms, 24)

	assert.Equal(t, "ANGGERIK-G-1", b.Floors[0].Rooms[0].ID)
	assert.Equal(t, "ANGGERIK-F1-1", b.Floors[1].Rooms[0].ID)
	assert.Equal(t, "ANGGERIK-F3-24", b.Floors[3].Rooms[23].ID)

	for _, f := range b.Floors {
		for _, r := range f.Rooms {
			assert.Equal(t, 2, r.Capacity)
			assert.Equal(t, TypeStandard, r.Type)
		}
	}
}

func TestVIPBuildingShape(t *testing.T) {
	c := Generate()

	b, ok := c.FindBuilding(BlockSeroja)
	require.True(t, ok)
	require.Len(t, b.Floors, 4)

	// Ground floor follows the standard pattern.
	assert.Len(t, b.Floors[0].Rooms, 8)
	for _, r := range b.Floors[0].Rooms {
		assert.Equal(t, 2, r.Capacity)
		assert.Equal(t, TypeStandard, r.Type)
	}

	// Floor 1 is the VIP floor: 24 single rooms.
	vip := b.Floors[1]
	require.Equal(t, 1, vip.FloorNumber)
	require.Len(t, vip.Rooms, 24)
	for _, r := range vip.Rooms {
		assert.Equal(t, 1, r.Capacity)
		assert.Equal(t, TypeVIP, r.Type)
	}

	// Floors 2 and 3 are standard double rooms.
	for _, f := range b.Floors[2:] {
		require.Len(t, f.Rooms, 24)
		for _, r := range f.Rooms {
			assert.Equal(t, 2, r.Capacity)
			assert.Equal(t, TypeStandard, r.Type)
		}
	}
}

func TestQuartersBuildingShape(t *testing.T) {
	c := Generate()

	b, ok := c.FindBuilding(RowLestari4)
	require.True(t, ok)
	require.Len(t, b.Floors, 1)

	f := b.Floors[0]
	assert.Equal(t, 0, f.FloorNumber)
	require.Len(t, f.Rooms, 15)
	for i, r := range f.Rooms {
		assert.Equal(t, 8, r.Capacity)
		assert.Equal(t, 0, r.Floor)
		assert.Equal(t, TypeQuarters, r.Type)
		assert.Equal(t, i+1, r.RoomNumber)
	}
	assert.Equal(t, "LESTARI_4-H1", f.Rooms[0].ID)
	assert.Equal(t, "LESTARI_4-H15", f.Rooms[14].ID)
}

func TestFindBuildingSingleMatch(t *testing.T) {
	c := Generate()

	for _, name := range []string{BlockAnggerik, BlockCempaka, BlockKenanga, BlockSeroja, RowLestari4, RowLestari5, RowLestari6} {
		matches := 0
		for _, b := range c.Buildings {
			if b.Name == name {
				matches++
			}
		}
		assert.Equalf(t, 1, matches, "building %s", name)

		b, ok := c.FindBuilding(name)
		require.True(t, ok)
		assert.Equal(t, name, b.Name)
	}

	_, ok := c.FindBuilding("TERATAI")
	assert.False(t, ok)
}

func TestFindRoom(t *testing.T) {
	c := Generate()

	r, ok := c.FindRoom("SEROJA-F1-7")
	require.True(t, ok)
	assert.Equal(t, 1, r.Capacity)
	assert.Equal(t, BlockSeroja, r.Building)
	assert.Equal(t, 1, r.Floor)
	assert.Equal(t, 7, r.RoomNumber)

	_, ok = c.FindRoom("SEROJA-F9-1")
	assert.False(t, ok)
}

func TestDefaultReturnsCachedCatalog(t *testing.T) {
	assert.Equal(t, Generate().Buildings, Default().Buildings)
	assert.Equal(t, 976, Default().TotalCapacity())
}

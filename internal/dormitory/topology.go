// Package dormitory implements the housing core of the service: the fixed
// building/floor/room catalog, the occupancy projection over assignment rows,
// and the validation guard that protects assignment writes.
package dormitory

import "fmt"

// Housing unit types. Quarters units are called "houses" and differ from
// rooms in capacity and identifier format.
const (
	TypeStandard = "standard"
	TypeVIP      = "vip"
	TypeQuarters = "quarters"
)

// Room is a single housing unit with a fixed bed capacity. The ID is derived
// from the building name, floor and room number and is unique across the
// whole complex (e.g. "ANGGERIK-G-3", "SEROJA-F1-7", "LESTARI_4-H12").
type Room struct {
	ID         string `json:"id"`
	RoomNumber int    `json:"roomNumber"`
	Capacity   int    `json:"capacity"`
	Building   string `json:"building"`
	Floor      int    `json:"floor"`
	Type       string `json:"type"`
}

// Floor groups the rooms of one level of a building. Quarters buildings have
// a single floor numbered 0.
type Floor struct {
	FloorNumber int    `json:"floorNumber"`
	FloorName   string `json:"floorName"`
	Rooms       []Room `json:"rooms"`
}

// Building is one of the seven fixed structures of the complex.
type Building struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	DisplayName string  `json:"displayName"`
	Floors      []Floor `json:"floors"`
}

// Catalog is the complete topology of the housing complex. Buildings appear
// in a fixed order: the three standard blocks, then the VIP block, then the
// three quarters rows. Consumers render buildings and rooms in this order.
type Catalog struct {
	Buildings []Building `json:"buildings"`

	index map[string]Room // room id -> room, built during generation
}

// Fixed building names. Standard blocks come first in generation order.
const (
	BlockAnggerik = "ANGGERIK"
	BlockCempaka  = "CEMPAKA"
	BlockKenanga  = "KENANGA"
	BlockSeroja   = "SEROJA"
	RowLestari4   = "LESTARI_4"
	RowLestari5   = "LESTARI_5"
	RowLestari6   = "LESTARI_6"
)

// Layout constants for the complex. The VIP floor is floor 1 of SEROJA.
const (
	groundRooms      = 8  // rooms on every ground floor
	upperFloors      = 3  // numbered floors above ground
	upperRooms       = 24 // rooms per numbered floor
	quartersHouses   = 15 // houses per quarters row
	standardCapacity = 2
	vipCapacity      = 1
	quartersCapacity = 8
	vipFloorNumber   = 1
)

var standardBlocks = []struct{ name, display string }{
	{BlockAnggerik, "Blok Anggerik"},
	{BlockCempaka, "Blok Cempaka"},
	{BlockKenanga, "Blok Kenanga"},
}

var quartersRows = []struct{ name, display string }{
	{RowLestari4, "Rumah Lestari 4"},
	{RowLestari5, "Rumah Lestari 5"},
	{RowLestari6, "Rumah Lestari 6"},
}

// catalog is generated once at process start. The topology has no inputs, so
// there is never a reason to regenerate it per request.
var catalog = Generate()

// Default returns the process-wide catalog.
func Default() Catalog { return catalog }

// Generate builds the full catalog from the fixed layout rules. It is
// deterministic: every call yields identical ids, order and counts.
func Generate() Catalog {
	c := Catalog{index: make(map[string]Room)}
	for _, b := range standardBlocks {
		c.addBuilding(standardBuilding(b.name, b.display))
	}
	c.addBuilding(vipBuilding(BlockSeroja, "Blok Seroja"))
	for _, q := range quartersRows {
		c.addBuilding(quartersBuilding(q.name, q.display))
	}
	return c
}

func (c *Catalog) addBuilding(b Building) {
	c.Buildings = append(c.Buildings, b)
	for _, f := range b.Floors {
		for _, r := range f.Rooms {
			c.index[r.ID] = r
		}
	}
}

// standardBuilding lays out a standard block: a ground floor of 8 double
// rooms followed by three numbered floors of 24 double rooms each.
func standardBuilding(name, display string) Building {
	b := Building{Name: name, Type: TypeStandard, DisplayName: display}
	b.Floors = append(b.Floors, groundFloor(name))
	for f := 1; f <= upperFloors; f++ {
		b.Floors = append(b.Floors, upperFloor(name, f, standardCapacity, TypeStandard))
	}
	return b
}

// vipBuilding lays out the SEROJA block. Its ground floor matches the
// standard pattern; floor 1 holds single-bed VIP rooms; floors 2 and 3 are
// standard again.
func vipBuilding(name, display string) Building {
	b := Building{Name: name, Type: TypeVIP, DisplayName: display}
	b.Floors = append(b.Floors, groundFloor(name))
	for f := 1; f <= upperFloors; f++ {
		if f == vipFloorNumber {
			b.Floors = append(b.Floors, upperFloor(name, f, vipCapacity, TypeVIP))
			continue
		}
		b.Floors = append(b.Floors, upperFloor(name, f, standardCapacity, TypeStandard))
	}
	return b
}

// quartersBuilding lays out one row of 15 eight-bed houses on floor 0.
func quartersBuilding(name, display string) Building {
	f := Floor{FloorNumber: 0, FloorName: "Quarters"}
	for n := 1; n <= quartersHouses; n++ {
		f.Rooms = append(f.Rooms, Room{
			ID:         fmt.Sprintf("%s-H%d", name, n),
			RoomNumber: n,
			Capacity:   quartersCapacity,
			Building:   name,
			Floor:      0,
			Type:       TypeQuarters,
		})
	}
	return Building{Name: name, Type: TypeQuarters, DisplayName: display, Floors: []Floor{f}}
}

func groundFloor(building string) Floor {
	f := Floor{FloorNumber: 0, FloorName: "Ground Floor"}
	for n := 1; n <= groundRooms; n++ {
		f.Rooms = append(f.Rooms, Room{
			ID:         fmt.Sprintf("%s-G-%d", building, n),
			RoomNumber: n,
			Capacity:   standardCapacity,
			Building:   building,
			Floor:      0,
			Type:       TypeStandard,
		})
	}
	return f
}

func upperFloor(building string, number, capacity int, roomType string) Floor {
	name := fmt.Sprintf("Floor %d", number)
	if roomType == TypeVIP {
		name = fmt.Sprintf("Floor %d (VIP)", number)
	}
	f := Floor{FloorNumber: number, FloorName: name}
	for n := 1; n <= upperRooms; n++ {
		f.Rooms = append(f.Rooms, Room{
			ID:         fmt.Sprintf("%s-F%d-%d", building, number, n),
			RoomNumber: n,
			Capacity:   capacity,
			Building:   building,
			Floor:      number,
			Type:       roomType,
		})
	}
	return f
}

// FindRoom resolves a room by its id.
func (c Catalog) FindRoom(id string) (Room, bool) {
	r, ok := c.index[id]
	return r, ok
}

// FindBuilding resolves a building by name.
func (c Catalog) FindBuilding(name string) (Building, bool) {
	for _, b := range c.Buildings {
		if b.Name == name {
			return b, true
		}
	}
	return Building{}, false
}

// Rooms returns every room of the complex flattened in generation order.
func (c Catalog) Rooms() []Room {
	var out []Room
	for _, b := range c.Buildings {
		for _, f := range b.Floors {
			out = append(out, f.Rooms...)
		}
	}
	return out
}

// TotalRooms counts all housing units in the catalog.
func (c Catalog) TotalRooms() int {
	n := 0
	for _, b := range c.Buildings {
		for _, f := range b.Floors {
			n += len(f.Rooms)
		}
	}
	return n
}

// TotalCapacity sums the bed capacity of every unit.
func (c Catalog) TotalCapacity() int {
	n := 0
	for _, b := range c.Buildings {
		for _, f := range b.Floors {
			for _, r := range f.Rooms {
				n += r.Capacity
			}
		}
	}
	return n
}

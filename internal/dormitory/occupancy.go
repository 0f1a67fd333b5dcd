package dormitory

import (
	"math"
	"time"
)

// Assignment statuses stored in the dormitory_assignments table.
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// Trainer carries the fields of a trainer row that the occupancy view needs.
type Trainer struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Rank string `json:"rank"`
}

// Assignment links a trainer to a room for a period of residence. Rows come
// from the dormitory_assignments table, optionally joined with the trainer.
type Assignment struct {
	ID        uint64    `json:"id"`
	TrainerID uint64    `json:"trainer_id"`
	RoomID    string    `json:"room_id"`
	CheckIn   time.Time `json:"check_in"`
	Status    string    `json:"status"`
	Trainer   *Trainer  `json:"trainer,omitempty"`
}

// Slot is one bed of a room in the projected view. Slots are numbered
// 1..capacity. Binding is positional: slot i holds the i-th assignment for
// the room in arrival order, so removing an occupant shifts later occupants
// down on the next projection. Bed numbers are a view artifact, not identity.
type Slot struct {
	Number     int         `json:"number"`
	Occupied   bool        `json:"occupied"`
	Assignment *Assignment `json:"assignment,omitempty"`
}

// RoomView is the per-room occupancy projection.
type RoomView struct {
	Room      Room   `json:"room"`
	Slots     []Slot `json:"slots"`
	Occupied  int    `json:"occupied"`
	Available int    `json:"available"`
}

// Stats aggregates occupancy at system or building granularity. All fields
// are integers; OccupancyRate is a rounded percentage in [0, 100].
type Stats struct {
	TotalRooms       int `json:"totalRooms"`
	OccupiedRooms    int `json:"occupiedRooms"`
	AvailableRooms   int `json:"availableRooms"`
	TotalCapacity    int `json:"totalCapacity"`
	CurrentOccupancy int `json:"currentOccupancy"`
	OccupancyRate    int `json:"occupancyRate"`
}

// Projection is the full occupancy view: one RoomView per catalog room in
// generation order plus system-wide stats.
type Projection struct {
	Rooms []RoomView `json:"rooms"`
	Stats Stats      `json:"stats"`
}

// Project joins the given assignment rows against the catalog and derives
// the occupancy view. Assignments referencing unknown room ids do not join
// and are ignored; they contribute to neither slots nor stats.
func (c Catalog) Project(assignments []Assignment) Projection {
	byRoom := c.groupByRoom(assignments)

	var p Projection
	for _, r := range c.Rooms() {
		p.Rooms = append(p.Rooms, roomView(r, byRoom[r.ID]))
	}
	p.Stats = c.stats(c.Rooms(), byRoom)
	return p
}

// BuildingStats computes the same aggregate formulas scoped to one building.
// The second return value is false when the building name is unknown.
func (c Catalog) BuildingStats(name string, assignments []Assignment) (Stats, bool) {
	b, ok := c.FindBuilding(name)
	if !ok {
		return Stats{}, false
	}
	var rooms []Room
	for _, f := range b.Floors {
		rooms = append(rooms, f.Rooms...)
	}
	byRoom := c.groupByRoom(assignments)
	scoped := make(map[string][]Assignment, len(rooms))
	for _, r := range rooms {
		if as, ok := byRoom[r.ID]; ok {
			scoped[r.ID] = as
		}
	}
	return c.stats(rooms, scoped), true
}

// groupByRoom buckets assignments by room id preserving arrival order and
// dropping rows whose room id is not in the catalog.
func (c Catalog) groupByRoom(assignments []Assignment) map[string][]Assignment {
	byRoom := make(map[string][]Assignment)
	for _, a := range assignments {
		if _, ok := c.index[a.RoomID]; !ok {
			continue
		}
		byRoom[a.RoomID] = append(byRoom[a.RoomID], a)
	}
	return byRoom
}

func roomView(r Room, assigned []Assignment) RoomView {
	v := RoomView{Room: r, Slots: make([]Slot, 0, r.Capacity)}
	for i := 0; i < r.Capacity; i++ {
		s := Slot{Number: i + 1}
		if i < len(assigned) {
			a := assigned[i]
			s.Occupied = true
			s.Assignment = &a
		}
		v.Slots = append(v.Slots, s)
	}
	v.Occupied = len(assigned)
	if v.Occupied > r.Capacity {
		v.Occupied = r.Capacity
	}
	v.Available = r.Capacity - v.Occupied
	return v
}

func (c Catalog) stats(rooms []Room, byRoom map[string][]Assignment) Stats {
	var s Stats
	s.TotalRooms = len(rooms)
	for _, r := range rooms {
		s.TotalCapacity += r.Capacity
	}
	for _, as := range byRoom {
		if len(as) == 0 {
			continue
		}
		s.OccupiedRooms++
		s.CurrentOccupancy += len(as)
	}
	s.AvailableRooms = s.TotalRooms - s.OccupiedRooms
	if s.TotalCapacity > 0 {
		s.OccupancyRate = int(math.Round(float64(s.CurrentOccupancy) / float64(s.TotalCapacity) * 100))
	}
	return s
}

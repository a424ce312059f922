package systems

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/vehicles/components"
	"github.com/pthm-cable/vehicles/motor"
)

// ErrUnknownStimulus is returned when a stimulus ID does not exist.
var ErrUnknownStimulus = errors.New("unknown stimulus")

// StimulusSpec describes a stimulus to add.
type StimulusSpec struct {
	Kind   motor.Kind
	Tag    string
	X, Y   float64
	Radius float64

	// Moving stimuli are driven by the TargetSystem.
	Moving    bool
	Heading   float64
	Speed     float64
	Frequency float64
}

// StimulusView is a copy of one stimulus taken at the start of a tick.
type StimulusView struct {
	ID        int
	Kind      motor.Kind
	Tag       string
	Position  r2.Vec
	Radius    float64
	Moving    bool
	Heading   float64
	Speed     float64
	Frequency float64
	Buzz      float64
}

// StimulusStore owns stimulus entities and gives them stable integer IDs.
type StimulusStore struct {
	world  *ecs.World
	fixed  *ecs.Map3[components.Position, components.Stimulus, components.Body]
	movers *ecs.Map5[components.Position, components.Stimulus, components.Body, components.Velocity, components.Signature]
	filter ecs.Filter3[components.Position, components.Stimulus, components.Body]

	posMap  *ecs.Map[components.Position]
	stimMap *ecs.Map[components.Stimulus]
	bodyMap *ecs.Map[components.Body]
	velMap  *ecs.Map[components.Velocity]
	sigMap  *ecs.Map[components.Signature]

	byID   map[int]ecs.Entity
	nextID int
}

// NewStimulusStore creates a store over the given world.
func NewStimulusStore(w *ecs.World) *StimulusStore {
	return &StimulusStore{
		world:   w,
		fixed:   ecs.NewMap3[components.Position, components.Stimulus, components.Body](w),
		movers:  ecs.NewMap5[components.Position, components.Stimulus, components.Body, components.Velocity, components.Signature](w),
		filter:  *ecs.NewFilter3[components.Position, components.Stimulus, components.Body](w),
		posMap:  ecs.NewMap[components.Position](w),
		stimMap: ecs.NewMap[components.Stimulus](w),
		bodyMap: ecs.NewMap[components.Body](w),
		velMap:  ecs.NewMap[components.Velocity](w),
		sigMap:  ecs.NewMap[components.Signature](w),
		byID:    make(map[int]ecs.Entity),
	}
}

// Add creates a stimulus entity and returns its ID.
func (s *StimulusStore) Add(spec StimulusSpec) int {
	id := s.nextID
	s.nextID++

	pos := components.Position{X: spec.X, Y: spec.Y}
	stim := components.Stimulus{ID: id, Kind: spec.Kind, Tag: spec.Tag}
	body := components.Body{Radius: spec.Radius}

	var e ecs.Entity
	if spec.Moving {
		vel := components.Velocity{Heading: spec.Heading, Speed: spec.Speed}
		sig := components.Signature{Frequency: spec.Frequency}
		e = s.movers.NewEntity(&pos, &stim, &body, &vel, &sig)
	} else {
		e = s.fixed.NewEntity(&pos, &stim, &body)
	}
	s.byID[id] = e
	return id
}

// Move places a stimulus at a new position.
func (s *StimulusStore) Move(id int, x, y float64) error {
	e, ok := s.byID[id]
	if !ok || !s.world.Alive(e) {
		return fmt.Errorf("move stimulus %d: %w", id, ErrUnknownStimulus)
	}
	pos := s.posMap.Get(e)
	pos.X, pos.Y = x, y
	return nil
}

// Remove deletes a stimulus.
func (s *StimulusStore) Remove(id int) error {
	e, ok := s.byID[id]
	if !ok || !s.world.Alive(e) {
		return fmt.Errorf("remove stimulus %d: %w", id, ErrUnknownStimulus)
	}
	s.world.RemoveEntity(e)
	delete(s.byID, id)
	return nil
}

// Clear removes every stimulus. IDs are not reused.
func (s *StimulusStore) Clear() {
	for id, e := range s.byID {
		if s.world.Alive(e) {
			s.world.RemoveEntity(e)
		}
		delete(s.byID, id)
	}
}

// Len returns the number of stimuli.
func (s *StimulusStore) Len() int { return len(s.byID) }

// Entity returns the entity behind a stimulus ID.
func (s *StimulusStore) Entity(id int) (ecs.Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Positions exposes the position map for spatial queries.
func (s *StimulusStore) Positions() *ecs.Map[components.Position] { return s.posMap }

// Get returns one stimulus by ID.
func (s *StimulusStore) Get(id int) (StimulusView, bool) {
	e, ok := s.byID[id]
	if !ok || !s.world.Alive(e) {
		return StimulusView{}, false
	}
	return s.View(e), true
}

// View copies an entity's stimulus components.
func (s *StimulusStore) View(e ecs.Entity) StimulusView {
	v := StimulusView{}
	if s.posMap.Has(e) {
		pos := s.posMap.Get(e)
		v.Position = r2.Vec{X: pos.X, Y: pos.Y}
	}
	if s.stimMap.Has(e) {
		stim := s.stimMap.Get(e)
		v.ID, v.Kind, v.Tag = stim.ID, stim.Kind, stim.Tag
	}
	if s.bodyMap.Has(e) {
		v.Radius = s.bodyMap.Get(e).Radius
	}
	s.fillMotion(e, &v)
	return v
}

func (s *StimulusStore) fillMotion(e ecs.Entity, v *StimulusView) {
	if s.velMap.Has(e) {
		vel := s.velMap.Get(e)
		v.Moving = true
		v.Heading, v.Speed = vel.Heading, vel.Speed
	}
	if s.sigMap.Has(e) {
		sig := s.sigMap.Get(e)
		v.Frequency = sig.Frequency
		v.Buzz = sig.Buzz()
	}
}

// Snapshot appends every stimulus to dst ordered by ID and returns it.
func (s *StimulusStore) Snapshot(dst []StimulusView) []StimulusView {
	dst = dst[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, stim, body := query.Get()
		v := StimulusView{
			ID:       stim.ID,
			Kind:     stim.Kind,
			Tag:      stim.Tag,
			Position: r2.Vec{X: pos.X, Y: pos.Y},
			Radius:   body.Radius,
		}
		s.fillMotion(query.Entity(), &v)
		dst = append(dst, v)
	}
	slices.SortFunc(dst, func(a, b StimulusView) int { return a.ID - b.ID })
	return dst
}

// Index fills grid with every stimulus entity.
func (s *StimulusStore) Index(grid *SpatialGrid) {
	grid.Clear()
	query := s.filter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		grid.Insert(query.Entity(), pos.X, pos.Y)
	}
}

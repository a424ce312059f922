package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlaySensors   OverlayID = "sensors"
	OverlayWiring    OverlayID = "wiring"
	OverlayTrails    OverlayID = "trails"
	OverlayRange     OverlayID = "range"
	OverlayResponse  OverlayID = "response"
	OverlayLabels    OverlayID = "labels"
	OverlayPerf      OverlayID = "perf"
	OverlayHeadings  OverlayID = "headings"
	OverlayInspector OverlayID = "inspector"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "S", "V")
	Category    string      // Grouping (e.g., "vehicle", "debug")
	Default     bool        // Enabled at startup
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays. Keys C, I, F, T, R and Space are
// taken by vehicle controls.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlaySensors,
		Name:        "Sensors",
		Description: "Sensor discs shaded by activation",
		Key:         rl.KeyS,
		KeyLabel:    "S",
		Category:    "vehicle",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayWiring,
		Name:        "Wiring",
		Description: "Sensor to motor connections, dashed when inhibitory",
		Key:         rl.KeyW,
		KeyLabel:    "W",
		Category:    "vehicle",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayHeadings,
		Name:        "Headings",
		Description: "Forward vector scaled by speed",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "vehicle",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayTrails,
		Name:        "Trails",
		Description: "Recent path of each vehicle",
		Key:         rl.KeyL,
		KeyLabel:    "L",
		Category:    "vehicle",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayLabels,
		Name:        "Labels",
		Description: "Vehicle names and law",
		Key:         rl.KeyN,
		KeyLabel:    "N",
		Category:    "vehicle",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayRange,
		Name:        "Sensing Range",
		Description: "Max response distance around each vehicle",
		Key:         rl.KeyD,
		KeyLabel:    "D",
		Category:    "perception",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayResponse,
		Name:        "Response Curve",
		Description: "Activation versus distance for the selected vehicle",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "perception",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayInspector,
		Name:        "Inspector",
		Description: "Readouts for the selected vehicle",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "debug",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Per-phase step timing",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// Keys returns every key bound to an overlay.
func (r *OverlayRegistry) Keys() []int32 {
	keys := make([]int32, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		if desc.Key != 0 {
			keys = append(keys, desc.Key)
		}
	}
	return keys
}

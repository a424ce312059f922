package telemetry

// TraceRow is one agent's state at one tick, for offline plotting.
type TraceRow struct {
	Tick            int32   `csv:"tick"`
	SimTimeSec      float64 `csv:"sim_time"`
	AgentID         int     `csv:"agent"`
	Name            string  `csv:"name"`
	X               float64 `csv:"x"`
	Y               float64 `csv:"y"`
	Heading         float64 `csv:"heading"`
	LeftActivation  float64 `csv:"left_activation"`
	RightActivation float64 `csv:"right_activation"`
	LeftMotor       float64 `csv:"left_motor"`
	RightMotor      float64 `csv:"right_motor"`
	Speed           float64 `csv:"speed"`
	AngularRate     float64 `csv:"angular_rate"`
	Nearest         int     `csv:"nearest"`
	NearestDistance float64 `csv:"nearest_distance"`
	TargetID        int     `csv:"target"`
	Law             string  `csv:"law"`
	Crossed         bool    `csv:"crossed"`
	Inhibitory      bool    `csv:"inhibitory"`
}

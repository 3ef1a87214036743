package dispatch

// State is a step of one dispatch.
type State int

const (
	Idle State = iota
	VersionChecked
	Provisioned
	Executing
	Done
	Failed
)

var stateNames = [...]string{
	Idle:           "idle",
	VersionChecked: "version-checked",
	Provisioned:    "provisioned",
	Executing:      "executing",
	Done:           "done",
	Failed:         "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

package acquire

// Chain steps in evaluation order.
const (
	StepPermissionGate = "permission gate"
	StepVersionBranch  = "version branch"
	StepReflective     = "reflective"
	StepConfigFile     = "config_file"
	StepDemo           = "demo"
)

// Steps lists every chain step in order.
var Steps = []string{StepPermissionGate, StepVersionBranch, StepReflective, StepConfigFile, StepDemo}

// StepResult is what happened at one chain step.
type StepResult int

const (
	StepPassed StepResult = iota
	StepBlocked
	StepSkipped
	StepEmpty
	StepAdopted
)

func (r StepResult) String() string {
	switch r {
	case StepPassed:
		return "passed"
	case StepBlocked:
		return "blocked"
	case StepSkipped:
		return "skipped"
	case StepEmpty:
		return "empty"
	case StepAdopted:
		return "adopted"
	default:
		return "unknown"
	}
}

// StepEvent reports one chain step to an observer.
type StepEvent struct {
	Step   string
	Result StepResult
	Count  int
	Detail string
}

func (c *Chain) emit(ev StepEvent) {
	if c.Observe != nil {
		c.Observe(ev)
	}
}

package mock

import (
	"sync"

	"wtr/internal/domain"
)

// State is the lifecycle state of a registration
type State int

const (
	// StateUnregistered means no registration exists for the target
	StateUnregistered State = iota
	// StateRegistered means the substitute is declared but not installed
	StateRegistered
	// StateActive means the substitute is installed for the current case
	StateActive
)

func (s State) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	case StateActive:
		return "active"
	default:
		return "unregistered"
	}
}

// Substitute is a stand-in implementation for an external dependency
type Substitute func(args ...interface{}) (interface{}, error)

// Call records one invocation of a substitute
type Call struct {
	Args []interface{}
}

// Registration maps an external dependency identifier to a substitute.
// Registration persists for the life of its suite; activation state and call
// history reset per case.
type Registration struct {
	target     string
	state      State
	substitute Substitute
	override   Substitute
	calls      []Call
}

// Target returns the dependency identifier this registration substitutes.
func (r *Registration) Target() string { return r.target }

// State returns the current lifecycle state.
func (r *Registration) State() State { return r.state }

// CallCount returns the number of invocations recorded in the current case.
func (r *Registration) CallCount() int { return len(r.calls) }

// Calls returns the recorded invocations of the current case.
func (r *Registration) Calls() []Call { return r.calls }

// Return overrides the substitute for the current case to resolve with value.
func (r *Registration) Return(value interface{}) {
	r.override = func(args ...interface{}) (interface{}, error) { return value, nil }
}

// Reject overrides the substitute for the current case to fail with err,
// like a stubbed rejected network call.
func (r *Registration) Reject(err error) {
	r.override = func(args ...interface{}) (interface{}, error) { return nil, err }
}

// Registry holds the mock registrations of a single test suite. Access is
// strictly sequential within a worker, but a registry is still safe to share
// with case bodies that await goroutines.
type Registry struct {
	mu            sync.Mutex
	registrations map[string]*Registration
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{registrations: make(map[string]*Registration)}
}

// Register declares a substitute for a target before any case runs.
// Registering the same target again replaces the substitute.
func (r *Registry) Register(target string, substitute Substitute) *Registration {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := &Registration{
		target:     target,
		state:      StateRegistered,
		substitute: substitute,
	}
	r.registrations[target] = reg
	return reg
}

// State returns the lifecycle state of a target.
func (r *Registry) State(target string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reg, ok := r.registrations[target]; ok {
		return reg.state
	}
	return StateUnregistered
}

// Get returns the registration for a target, if any.
func (r *Registry) Get(target string) (*Registration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.registrations[target]
	return reg, ok
}

// ActivateAll installs every registered substitute at the start of a case.
func (r *Registry) ActivateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.registrations {
		if reg.state == StateRegistered {
			reg.state = StateActive
		}
	}
}

// ResetAll tears down the case: call history and return overrides are
// cleared and every registration returns to Registered, not Unregistered.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.registrations {
		reg.calls = nil
		reg.override = nil
		if reg.state == StateActive {
			reg.state = StateRegistered
		}
	}
}

// Invoke calls the substitute registered for target, recording the call.
// Invoking an unregistered or inactive target is a MockMisuseError.
func (r *Registry) Invoke(target string, args ...interface{}) (interface{}, error) {
	r.mu.Lock()
	reg, ok := r.registrations[target]
	if !ok {
		r.mu.Unlock()
		return nil, &domain.MockMisuseError{Target: target, Op: "invoke"}
	}
	if reg.state != StateActive {
		r.mu.Unlock()
		return nil, &domain.MockMisuseError{Target: target, Op: "invoke"}
	}
	reg.calls = append(reg.calls, Call{Args: args})
	substitute := reg.substitute
	if reg.override != nil {
		substitute = reg.override
	}
	r.mu.Unlock()

	return substitute(args...)
}

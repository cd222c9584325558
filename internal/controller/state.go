// Package controller holds the per-screen state machines. Each controller
// owns one State value, issues API calls in response to user actions and
// exposes navigation intents for the shell to interpret.
package controller

// Phase is the tag of a screen state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseEmpty
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseEmpty:
		return "empty"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a tagged screen state. Payload is meaningful only in PhaseSuccess;
// Message carries the empty-result or error text.
type State[T any] struct {
	Phase   Phase
	Payload T
	Message string
}

func Loading[T any]() State[T] {
	return State[T]{Phase: PhaseLoading}
}

func Success[T any](payload T) State[T] {
	return State[T]{Phase: PhaseSuccess, Payload: payload}
}

func Empty[T any](message string) State[T] {
	return State[T]{Phase: PhaseEmpty, Message: message}
}

func Errored[T any](message string) State[T] {
	return State[T]{Phase: PhaseError, Message: message}
}

// Render folds the state into display text using the given payload renderer,
// so screens share one rendering shape.
func (s State[T]) Render(payload func(T) string) string {
	switch s.Phase {
	case PhaseLoading:
		return "Cargando..."
	case PhaseSuccess:
		return payload(s.Payload)
	case PhaseEmpty, PhaseError:
		return s.Message
	default:
		return ""
	}
}

// Nav is a navigation intent returned by controller actions. The shell routes;
// controllers never touch presentation.
type Nav int

const (
	NavNone Nav = iota
	NavHome
	NavLogin
	NavOrders
)

func (n Nav) String() string {
	switch n {
	case NavHome:
		return "home"
	case NavLogin:
		return "login"
	case NavOrders:
		return "orders"
	default:
		return "none"
	}
}

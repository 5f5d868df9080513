package router

import (
	"fmt"

	"github.com/BrandonKowalski/trio/pkg/trio/registry"
)

// Screen names a screen declared in the schema.
type Screen string

// ScreenFunc runs a screen. It receives the screen's trio, already built and
// attached, and the input chosen by the previous transition.
type ScreenFunc func(trio *registry.Trio, input any) (result any, err error)

// TransitionFunc is called after each screen completes to determine the next screen.
// It receives the screen that just completed, its result, and the navigation stack.
//
// Return (screen, input) to navigate to a new screen.
// Return stack.Pop() values to go back.
// Return (ScreenExit, nil) to exit the router.
type TransitionFunc func(from Screen, result any, stack *Stack) (next Screen, input any)

// ScreenExit is a special Screen value that signals the router to exit.
const ScreenExit Screen = ""

// Router navigates between registry screens. A screen that has not been
// built yet is created, with its missing ancestors, on first visit.
type Router struct {
	registry   *registry.Registry
	screens    map[Screen]ScreenFunc
	transition TransitionFunc
	stack      *Stack
}

// New creates a Router over reg.
func New(reg *registry.Registry) *Router {
	return &Router{
		registry: reg,
		screens:  make(map[Screen]ScreenFunc),
		stack:    NewStack(),
	}
}

// Register adds a screen to the router.
// The screen function will be called when navigating to this screen.
func (r *Router) Register(screen Screen, fn ScreenFunc) *Router {
	r.screens[screen] = fn
	return r
}

// OnTransition sets the transition function that determines navigation flow.
func (r *Router) OnTransition(fn TransitionFunc) *Router {
	r.transition = fn
	return r
}

// Run starts the router at the given screen with the given input.
// It continues running until the transition function returns ScreenExit
// or an error occurs.
func (r *Router) Run(start Screen, input any) error {
	if r.transition == nil {
		return fmt.Errorf("router: no transition function set")
	}

	current := start
	currentInput := input

	for {
		fn, ok := r.screens[current]
		if !ok {
			return fmt.Errorf("router: screen %q not registered", current)
		}

		trio, err := r.visit(current)
		if err != nil {
			return fmt.Errorf("router: screen %q: %w", current, err)
		}

		result, err := fn(trio, currentInput)
		if err != nil {
			return fmt.Errorf("router: screen %q error: %w", current, err)
		}

		next, nextInput := r.transition(current, result, r.stack)
		if next == ScreenExit {
			return nil
		}

		current = next
		currentInput = nextInput
	}
}

// visit makes sure the screen exists in the registry and returns its trio.
func (r *Router) visit(screen Screen) (*registry.Trio, error) {
	name := string(screen)
	state, err := r.registry.State(name)
	if err != nil {
		return nil, err
	}
	if state == registry.StateAbsent {
		if _, err := registry.Drain(r.registry.CreateSubtree(name, false)); err != nil {
			return nil, err
		}
	}
	trio, _ := r.registry.Trio(name)
	return trio, nil
}

// Stack returns the navigation stack for use in transition functions.
func (r *Router) Stack() *Stack {
	return r.stack
}

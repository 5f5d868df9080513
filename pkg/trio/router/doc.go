// Package router provides screen navigation over a registry with explicit
// data flow.
//
// Each screen declared in the schema can be registered with a function that
// receives the screen's trio and an input, and returns a result. A single
// transition function decides where to go next. Screens are created in the
// registry lazily, the first time navigation reaches them.
//
// # Basic Usage
//
//	r := router.New(reg)
//
//	r.Register("initial_screen", func(t *registry.Trio, input any) (any, error) {
//	    return homeScreen(t.Controller().(*HomeController)), nil
//	})
//
//	r.Register("settings", func(t *registry.Trio, input any) (any, error) {
//	    return settingsScreen(t.Controller().(*SettingsController)), nil
//	})
//
//	r.OnTransition(func(from router.Screen, result any, stack *router.Stack) (router.Screen, any) {
//	    switch from {
//	    case "initial_screen":
//	        if result.(HomeResult).OpenSettings {
//	            stack.Push(from, nil, nil)
//	            return "settings", nil
//	        }
//	    case "settings":
//	        if entry := stack.Pop(); entry != nil {
//	            return entry.Screen, entry.Input
//	        }
//	    }
//	    return router.ScreenExit, nil
//	})
//
//	r.Run("initial_screen", nil)
//
// # Resume State
//
// Screens can return resume state (like scroll position) that gets stored
// on the stack when navigating forward. When navigating back, this state
// is passed back to the screen via its input, allowing it to restore position.
package router

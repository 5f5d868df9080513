// Package declare loads screen declarations from TOML or YAML files and
// turns them into schema entries.
//
// A declaration names a screen and its kind; the kind is resolved through a
// Catalog to the model, controller and view factories registered by the
// application. Kind defaults to the screen name.
//
//	[[screen]]
//	name = "app_screen"
//	children = ["initial_screen", "settings"]
//
//	[[screen]]
//	name = "initial_screen"
//	kind = "home"
//	resource = "views/home.view"
//
//	[[screen]]
//	name = "settings"
//	resource = false # explicitly no view resource
//
// The YAML form uses a top-level "screens" list with the same keys.
package declare

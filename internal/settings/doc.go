// Package settings loads the optional HCL settings file that tunes
// parsing and export: the duplicate-phase policy, the required
// per-phase parameter set, the exported structure columns and free-form
// column renames.
package settings

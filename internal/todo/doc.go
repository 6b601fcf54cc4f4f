// Package todo is the task-list domain model: tasks with an optional A-Z
// priority, their todo.txt line form, the display order, projects derived
// from task membership, presets and their injection, and cleanup of
// completed tasks.
//
// Nothing in this package blocks or locks. A TaskList or PresetBook shared
// between goroutines needs one external mutex (see internal/workspace).
package todo

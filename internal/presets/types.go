package presets

import "todo-presets-backend/internal/todo"

// PresetView is the JSON shape of a preset.
type PresetView struct {
	Name  string            `json:"name"`
	Tasks []todo.PresetTask `json:"tasks"`
}

func viewOf(p *todo.Preset) PresetView {
	return PresetView{Name: p.Name(), Tasks: p.Tasks()}
}

type CreatePresetRequest struct {
	Name string `json:"name"`
}

type AddPresetTaskRequest struct {
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

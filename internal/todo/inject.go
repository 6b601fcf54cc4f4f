package todo

// Inject copies every preset task into target as a new pending task whose
// project is the preset name, and returns the new ids in preset order.
// Injecting the same preset again adds another batch. The preset itself is
// not modified.
func Inject(preset *Preset, target *TaskList) ([]string, error) {
	batch := make([]Task, 0, len(preset.tasks))
	for _, pt := range preset.tasks {
		t, err := newTask(pt.Priority, pt.Description, preset.name)
		if err != nil {
			return nil, err
		}
		batch = append(batch, t)
	}

	ids := make([]string, 0, len(batch))
	for _, t := range batch {
		ids = append(ids, target.insert(t))
	}
	return ids, nil
}

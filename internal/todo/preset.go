package todo

import "strings"

// PresetTask is a template entry. It has no id, completion state or project;
// those only exist once the preset is injected.
type PresetTask struct {
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
}

// Preset is a named, ordered collection of preset tasks.
type Preset struct {
	name  string
	tasks []PresetTask
}

func (p *Preset) Name() string { return p.name }

func (p *Preset) Len() int { return len(p.tasks) }

// Tasks returns a copy of the preset tasks in order.
func (p *Preset) Tasks() []PresetTask {
	out := make([]PresetTask, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// AddTask validates like TaskList.Add, without a project.
func (p *Preset) AddTask(priority Priority, description string) error {
	if err := checkPriority(priority); err != nil {
		return err
	}
	d, err := cleanDescription(description)
	if err != nil {
		return err
	}
	p.tasks = append(p.tasks, PresetTask{Priority: priority, Description: d})
	return nil
}

// PresetBook holds presets under unique names, in creation order.
type PresetBook struct {
	presets map[string]*Preset
	order   []string
}

func NewPresetBook() *PresetBook {
	return &PresetBook{presets: make(map[string]*Preset)}
}

func cleanPresetName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", invalidf("preset name is empty")
	}
	if strings.ContainsAny(n, "\r\n") {
		return "", invalidf("preset name must be a single line")
	}
	return n, nil
}

// Create registers an empty preset. Names are unique within the book.
func (b *PresetBook) Create(name string) (*Preset, error) {
	n, err := cleanPresetName(name)
	if err != nil {
		return nil, err
	}
	if _, exists := b.presets[n]; exists {
		return nil, invalidf("preset %q already exists", n)
	}
	p := &Preset{name: n}
	b.presets[n] = p
	b.order = append(b.order, n)
	return p, nil
}

func (b *PresetBook) Get(name string) (*Preset, error) {
	p, ok := b.presets[strings.TrimSpace(name)]
	if !ok {
		return nil, notFoundf("preset %q", name)
	}
	return p, nil
}

func (b *PresetBook) Remove(name string) error {
	n := strings.TrimSpace(name)
	if _, ok := b.presets[n]; !ok {
		return notFoundf("preset %q", name)
	}
	delete(b.presets, n)
	for i, o := range b.order {
		if o == n {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Names lists preset names in creation order.
func (b *PresetBook) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

func (b *PresetBook) Presets() []*Preset {
	out := make([]*Preset, 0, len(b.order))
	for _, n := range b.order {
		out = append(out, b.presets[n])
	}
	return out
}

func (b *PresetBook) Len() int { return len(b.order) }

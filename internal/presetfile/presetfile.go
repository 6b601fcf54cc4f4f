// Package presetfile reads preset definitions from YAML:
//
//	presets:
//	  - name: chores
//	    tasks:
//	      - "(A) vacuum"
//	      - dishes
//
// Each task is a canonical todo.txt line. Completed lines are rejected.
package presetfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"todo-presets-backend/internal/todo"
)

type Definition struct {
	Name  string   `yaml:"name"`
	Tasks []string `yaml:"tasks"`
}

type file struct {
	Presets []Definition `yaml:"presets"`
}

// Parse decodes and checks the definitions in r.
func Parse(r io.Reader) ([]Definition, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode presets yaml: %w", err)
	}

	// trial run against a scratch book so that every error surfaces here
	if _, err := Apply(todo.NewPresetBook(), f.Presets); err != nil {
		return nil, err
	}
	return f.Presets, nil
}

func LoadFile(path string) ([]Definition, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presets file: %w", err)
	}
	defer fh.Close()

	defs, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Apply creates every definition whose name is not in book yet and returns
// how many were created. Existing presets are left untouched. On error
// nothing is added.
func Apply(book *todo.PresetBook, defs []Definition) (int, error) {
	staged := todo.NewPresetBook()
	for _, def := range defs {
		if _, err := book.Get(def.Name); err == nil {
			continue
		}
		p, err := staged.Create(def.Name)
		if err != nil {
			return 0, err
		}
		for i, line := range def.Tasks {
			t := todo.Decode(line)
			if t.Completed {
				return 0, fmt.Errorf("preset %q task %d: completed lines are not allowed", p.Name(), i+1)
			}
			if err := p.AddTask(t.Priority, t.Description); err != nil {
				return 0, fmt.Errorf("preset %q task %d: %w", p.Name(), i+1, err)
			}
		}
	}

	for _, p := range staged.Presets() {
		created, err := book.Create(p.Name())
		if err != nil {
			return 0, err
		}
		for _, pt := range p.Tasks() {
			if err := created.AddTask(pt.Priority, pt.Description); err != nil {
				return 0, err
			}
		}
	}
	return staged.Len(), nil
}

package presets

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"todo-presets-backend/internal/analytics"
	"todo-presets-backend/internal/httperr"
	"todo-presets-backend/internal/todo"
	"todo-presets-backend/internal/workspace"
)

type PresetHandler struct {
	WS *workspace.Workspace
	DB *sql.DB
}

func New(ws *workspace.Workspace, db *sql.DB) *PresetHandler {
	return &PresetHandler{WS: ws, DB: db}
}

func (h *PresetHandler) Register(r *mux.Router) {
	r.HandleFunc("/presets", ListPresetsHandler(h.WS)).Methods(http.MethodGet)
	r.HandleFunc("/presets", CreatePresetHandler(h.WS, h.DB)).Methods(http.MethodPost)
	r.HandleFunc("/presets/{name}", GetPresetHandler(h.WS)).Methods(http.MethodGet)
	r.HandleFunc("/presets/{name}", DeletePresetHandler(h.WS)).Methods(http.MethodDelete)
	r.HandleFunc("/presets/{name}/tasks", AddPresetTaskHandler(h.WS)).Methods(http.MethodPost)
	r.HandleFunc("/presets/{name}/inject", InjectPresetHandler(h.WS, h.DB)).Methods(http.MethodPost)
}

func ListPresetsHandler(ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := []PresetView{}
		ws.View(func(_ *todo.TaskList, b *todo.PresetBook) {
			for _, p := range b.Presets() {
				out = append(out, viewOf(p))
			}
		})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

func GetPresetHandler(ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			view PresetView
			err  error
		)
		ws.View(func(_ *todo.TaskList, b *todo.PresetBook) {
			var p *todo.Preset
			if p, err = b.Get(mux.Vars(r)["name"]); err == nil {
				view = viewOf(p)
			}
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(view)
	}
}

func CreatePresetHandler(ws *workspace.Workspace, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreatePresetRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var view PresetView
		err := ws.UpdatePresets(r.Context(), func(b *todo.PresetBook) error {
			p, err := b.Create(body.Name)
			if err != nil {
				return err
			}
			view = viewOf(p)
			return nil
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		// analytics: preset_created (имя пресета не логируем)
		if err := analytics.Log(r.Context(), dbx, analytics.FromRequest(r), "preset_created",
			map[string]any{"name_len": len(view.Name)}, analytics.SourceEventKeyFromRequest(r)); err != nil {
			log.Printf("[WARN] activity log failed event=preset_created: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(view)
	}
}

func DeletePresetHandler(ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		err := ws.UpdatePresets(r.Context(), func(b *todo.PresetBook) error {
			return b.Remove(name)
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func AddPresetTaskHandler(ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		var body AddPresetTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		priority, err := todo.ParsePriority(body.Priority)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		var view PresetView
		err = ws.UpdatePresets(r.Context(), func(b *todo.PresetBook) error {
			p, err := b.Get(name)
			if err != nil {
				return err
			}
			if err := p.AddTask(priority, body.Description); err != nil {
				return err
			}
			view = viewOf(p)
			return nil
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(view)
	}
}

// InjectPresetHandler adds one fresh task per preset task and returns their ids.
func InjectPresetHandler(ws *workspace.Workspace, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := ws.Inject(r.Context(), mux.Vars(r)["name"])
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		if err := analytics.Log(r.Context(), dbx, analytics.FromRequest(r), "preset_injected",
			map[string]any{"tasks": len(ids)}, analytics.SourceEventKeyFromRequest(r)); err != nil {
			log.Printf("[WARN] activity log failed event=preset_injected: %v", err)
		}

		if ids == nil {
			ids = []string{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ids": ids})
	}
}

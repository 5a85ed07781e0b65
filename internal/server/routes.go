package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/render"
	"github.com/goliatone/go-admin-shell/pkg/renderers/vanilla"
	"github.com/goliatone/go-admin-shell/pkg/sidebar"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.recovery, s.accessLog)

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/dashboard", http.StatusFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/sidebar/toggle", s.handleToggle).Methods(http.MethodPost)
	r.HandleFunc("/form", s.formHandler(forms.GenericFormID, render.PageForm, "/form")).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login", s.formHandler(forms.LoginFormID, render.PageLogin, "")).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/forms/{id}", s.handleDocumentForm).Methods(http.MethodGet, http.MethodPost)

	assets := http.FileServer(http.FS(vanilla.AssetsFS()))
	prefix := strings.TrimRight(s.cfg.AssetsPrefix, "/")
	if prefix == "" {
		prefix = "/assets"
	}
	r.PathPrefix(prefix+"/").Handler(http.StripPrefix(prefix, assets)).Methods(http.MethodGet, http.MethodHead)
	if _, err := fs.Stat(vanilla.AssetsFS(), "svg"); err == nil {
		r.PathPrefix("/svg/").Handler(assets).Methods(http.MethodGet, http.MethodHead)
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// sidebarFor builds a controller for one request. The expanded flag comes
// from the hidden field or query; absent means expanded.
func (s *Server) sidebarFor(req *http.Request, active string) *sidebar.Controller {
	return sidebar.NewController(
		sidebar.WithExpanded(render.ParseExpanded(req.FormValue(render.ExpandedField))),
		sidebar.WithNav(s.nav.WithActive(active)),
		sidebar.WithTheme(s.theme),
	)
}

func (s *Server) handleDashboard(w http.ResponseWriter, req *http.Request) {
	ctrl := s.sidebarFor(req, "/dashboard")
	view := ctrl.View()
	s.write(w, req, http.StatusOK, render.Page{
		Kind:    render.PageDashboard,
		Title:   "Dashboard",
		Sidebar: &view,
		Hidden:  s.hidden(req, ctrl.Expanded()),
	})
}

// handleToggle flips the submitted flag. With a fragment field only the
// sidebar is returned.
func (s *Server) handleToggle(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		s.fail(w, req, http.StatusBadRequest, err)
		return
	}
	ctrl := s.sidebarFor(req, "/dashboard")
	ctrl.Toggle()
	view := ctrl.View()

	kind, title := render.PageDashboard, "Dashboard"
	if _, ok := req.PostForm[render.FragmentField]; ok {
		kind, title = render.PageSidebar, ""
	}
	s.write(w, req, http.StatusOK, render.Page{
		Kind:    kind,
		Title:   title,
		Sidebar: &view,
		Hidden:  s.hidden(req, ctrl.Expanded()),
	})
}

func (s *Server) handleDocumentForm(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	if id == forms.GenericFormID || id == forms.LoginFormID {
		http.NotFound(w, req)
		return
	}
	if _, err := s.forms.Get(id); err != nil {
		http.NotFound(w, req)
		return
	}
	s.formHandler(id, render.PageForm, "/forms/"+id)(w, req)
}

// formHandler renders the form on GET and validates then submits on POST.
// active selects the highlighted sidebar entry; empty omits the sidebar.
func (s *Server) formHandler(id string, kind render.PageKind, active string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		form, err := s.forms.Get(id)
		if err != nil {
			s.fail(w, req, http.StatusInternalServerError, err)
			return
		}
		fm := form.Model()

		var (
			values    validation.Values
			decodeErr error
		)
		if req.Method == http.MethodPost {
			values, decodeErr = decodeValues(req, fm, s.cfg.MaxUploadBytes)
			if decodeErr != nil && !errors.Is(decodeErr, errUploadTooLarge) {
				s.fail(w, req, http.StatusBadRequest, decodeErr)
				return
			}
		}

		page := render.Page{Kind: kind, Form: &fm, Values: values}
		expanded := true
		if active != "" {
			ctrl := s.sidebarFor(req, active)
			view := ctrl.View()
			page.Sidebar = &view
			expanded = ctrl.Expanded()
		}
		page.Hidden = s.hidden(req, expanded)

		if req.Method != http.MethodPost {
			s.write(w, req, http.StatusOK, page)
			return
		}
		if decodeErr != nil {
			page.Errors = render.ErrorMapping{Form: []string{"Upload is too large"}}
			s.write(w, req, http.StatusRequestEntityTooLarge, page)
			return
		}

		result, submitErr := form.Submit(req.Context(), values)
		page.Errors = render.MapResult(fm, result, submitErr)
		switch {
		case submitErr != nil:
			s.logger.Warn("completion handler failed",
				zap.String("form", id),
				zap.String("request_id", RequestID(req.Context())),
				zap.Error(submitErr))
			s.write(w, req, http.StatusUnprocessableEntity, page)
		case !result.Valid():
			s.write(w, req, http.StatusUnprocessableEntity, page)
		default:
			page.Submitted = true
			page.Data = render.PublicData(fm, values)
			s.write(w, req, http.StatusOK, page)
		}
	}
}

func (s *Server) hidden(req *http.Request, expanded bool) []render.HiddenField {
	return []render.HiddenField{
		render.SidebarState(expanded),
		render.RequestToken(RequestID(req.Context())),
	}
}

// write renders page with the renderer negotiated from the Accept header.
func (s *Server) write(w http.ResponseWriter, req *http.Request, status int, page render.Page) {
	page.RequestID = RequestID(req.Context())
	renderer, err := s.renderers.Negotiate(req.Header.Get("Accept"))
	if err != nil {
		s.fail(w, req, http.StatusInternalServerError, err)
		return
	}
	body, err := renderer.Render(req.Context(), page)
	if err != nil {
		s.fail(w, req, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Vary", "Accept")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) fail(w http.ResponseWriter, req *http.Request, status int, err error) {
	s.logger.Error("request failed",
		zap.String("path", req.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", RequestID(req.Context())),
		zap.Error(err))
	http.Error(w, http.StatusText(status), status)
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gestor/internal/auth"
	"gestor/internal/export"
	"gestor/pkg/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusBadRequest, "invalid credentials")
		return
	}
	if err != nil {
		a.writeDomainError(w, r, err, false)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := a.auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		a.writeDomainError(w, r, err, true)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) handleList(m domain.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			payload any
			err     error
		)
		// Empty modules serialize as [] rather than null.
		switch m {
		case domain.ModuleTasks:
			var tasks []domain.Task
			if tasks, err = a.svc.ListTasks(r.Context()); tasks == nil {
				tasks = []domain.Task{}
			}
			payload = tasks
		case domain.ModuleContacts:
			var contacts []domain.Contact
			if contacts, err = a.svc.ListContacts(r.Context()); contacts == nil {
				contacts = []domain.Contact{}
			}
			payload = contacts
		case domain.ModuleMinutes:
			var minutes []domain.Minute
			if minutes, err = a.svc.ListMinutes(r.Context()); minutes == nil {
				minutes = []domain.Minute{}
			}
			payload = minutes
		case domain.ModuleSales:
			var sales []domain.Sale
			if sales, err = a.svc.ListSales(r.Context()); sales == nil {
				sales = []domain.Sale{}
			}
			payload = sales
		}
		if err != nil {
			a.writeDomainError(w, r, err, false)
			return
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

func (a *API) handleCreate(m domain.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			payload any
			err     error
		)
		switch m {
		case domain.ModuleTasks:
			var in domain.TaskInput
			if !decodeJSON(w, r, &in) {
				return
			}
			payload, err = a.svc.CreateTask(r.Context(), in)
		case domain.ModuleContacts:
			var in domain.ContactInput
			if !decodeJSON(w, r, &in) {
				return
			}
			payload, err = a.svc.CreateContact(r.Context(), in)
		case domain.ModuleMinutes:
			var in domain.MinuteInput
			if !decodeJSON(w, r, &in) {
				return
			}
			payload, err = a.svc.CreateMinute(r.Context(), in)
		case domain.ModuleSales:
			var in domain.SaleInput
			if !decodeJSON(w, r, &in) {
				return
			}
			payload, err = a.svc.CreateSale(r.Context(), in)
		}
		if err != nil {
			a.writeDomainError(w, r, err, true)
			return
		}
		writeJSON(w, http.StatusCreated, payload)
	}
}

func (a *API) handleUpdate(m domain.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var (
			payload any
			err     error
		)
		switch m {
		case domain.ModuleTasks:
			var in domain.TaskInput
			if !decodeJSON(w, r, &in) {
				return
			}
			payload, err = a.svc.UpdateTask(r.Context(), id, in)
		case domain.ModuleContacts:
			var in domain.ContactInput
			if !decodeJSON(w, r, &in) {
				return
			}
			payload, err = a.svc.UpdateContact(r.Context(), id, in)
		case domain.ModuleMinutes:
			var in domain.MinuteInput
			if !decodeJSON(w, r, &in) {
				return
			}
			payload, err = a.svc.UpdateMinute(r.Context(), id, in)
		case domain.ModuleSales:
			var in domain.SaleInput
			if !decodeJSON(w, r, &in) {
				return
			}
			payload, err = a.svc.UpdateSale(r.Context(), id, in)
		}
		if err != nil {
			a.writeDomainError(w, r, err, true)
			return
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

type exportRequest struct {
	Module string `json:"module"`
	Format string `json:"format"`
}

func (a *API) handleCreateExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	module, ok := domain.ParseModule(req.Module)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown module")
		return
	}
	format, ok := export.ParseFormat(req.Format)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown export format")
		return
	}
	rec, err := a.exports.Run(r.Context(), module, format)
	if err != nil {
		a.writeDomainError(w, r, err, true)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (a *API) handleListExports(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.exports.List())
}

func (a *API) handleGetExport(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.exports.Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "export not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

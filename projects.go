package adminclient

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/municipio-ibarra/adminclient/core/httpclient"
)

// ProjectStatus is the review state of a project.
type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "pendiente"
	ProjectApproved   ProjectStatus = "aprobado"
	ProjectRejected   ProjectStatus = "rechazado"
	ProjectInProgress ProjectStatus = "en-progreso"
	ProjectCompleted  ProjectStatus = "completado"
)

// ProjectInput holds the writable project fields.
type ProjectInput struct {
	Nombre      string   `json:"nombre"`
	Descripcion string   `json:"descripcion"`
	Responsable string   `json:"responsable,omitempty"`
	Presupuesto *float64 `json:"presupuesto,omitempty"`
	Categoria   string   `json:"categoria,omitempty"`
	Email       string   `json:"email,omitempty"`
	Cedula      string   `json:"cedula,omitempty"`
	Telefono    string   `json:"telefono,omitempty"`
	Direccion   string   `json:"direccion,omitempty"`
}

// Project is a submitted project. The backend is inconsistent about field
// names; the alternates are kept so callers can use the accessors below.
type Project struct {
	ProjectInput

	ID          ID            `json:"id"`
	Estado      ProjectStatus `json:"estado,omitempty"`
	FechaEnvio  string        `json:"fechaEnvio,omitempty"`
	FechaInicio string        `json:"fechaInicio,omitempty"`
	FechaFin    string        `json:"fechaFin,omitempty"`

	Name        string `json:"name,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// DisplayName returns the first non-empty of nombre, name and title.
func (p Project) DisplayName() string {
	return firstNonEmpty(p.Nombre, p.Name, p.Title)
}

// DisplayDescription returns descripcion or description.
func (p Project) DisplayDescription() string {
	return firstNonEmpty(p.Descripcion, p.Description)
}

// State returns the review state, falling back to status and then pending.
func (p Project) State() ProjectStatus {
	if p.Estado != "" {
		return p.Estado
	}
	if p.Status != "" {
		return ProjectStatus(strings.ToLower(p.Status))
	}
	return ProjectPending
}

// ProjectFilter narrows ListProjects. An empty or "all" Status is not sent.
type ProjectFilter struct {
	Status string
	Search string
}

// DashboardStats are the admin overview counters.
type DashboardStats struct {
	TotalUsers    int  `json:"totalUsers"`
	PendingUsers  int  `json:"pendingUsers"`
	ApprovedUsers int  `json:"approvedUsers"`
	RejectedUsers *int `json:"rejectedUsers,omitempty"`
}

// Observation is the body sent when rejecting with a reviewer note.
type Observation struct {
	Observacion string    `json:"observacion"`
	Timestamp   time.Time `json:"timestamp"`
}

// MessageResult is the body of endpoints that only return a message.
type MessageResult struct {
	Message string `json:"message"`
}

// ListProjects lists projects, optionally filtered by status and search text.
func (c *Client) ListProjects(ctx context.Context, page PageRequest, filter ProjectFilter) httpclient.Response[Page[Project]] {
	q := page.query(ZeroBased)
	if filter.Status != "" && filter.Status != "all" {
		q.Set("estado", filter.Status)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	return httpclient.Get[Page[Project]](ctx, c.http, "/api/proyectos", q)
}

// PendingProjects lists projects awaiting review.
func (c *Client) PendingProjects(ctx context.Context, page PageRequest) httpclient.Response[Page[Project]] {
	return httpclient.Get[Page[Project]](ctx, c.http, "/admin/pending", page.query(ZeroBased))
}

// GetProject fetches one project.
func (c *Client) GetProject(ctx context.Context, id ID) httpclient.Response[Project] {
	return httpclient.Get[Project](ctx, c.http, "/api/proyectos/"+escapeID(id), nil)
}

// CreateProject submits a new project.
func (c *Client) CreateProject(ctx context.Context, in ProjectInput) httpclient.Response[Project] {
	return httpclient.Post[Project](ctx, c.http, "/api/proyectos", in)
}

// UpdateProject replaces the writable fields of a project.
func (c *Client) UpdateProject(ctx context.Context, id ID, in ProjectInput) httpclient.Response[Project] {
	return httpclient.Put[Project](ctx, c.http, "/api/proyectos/"+escapeID(id), in)
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id ID) httpclient.Response[MessageResult] {
	return httpclient.Delete[MessageResult](ctx, c.http, "/api/proyectos/"+escapeID(id), nil)
}

// ApproveProject approves a pending project.
func (c *Client) ApproveProject(ctx context.Context, id ID) httpclient.Response[Project] {
	return httpclient.Post[Project](ctx, c.http, "/admin/approve/"+escapeID(id), nil)
}

// RejectProject rejects a pending project.
func (c *Client) RejectProject(ctx context.Context, id ID) httpclient.Response[Project] {
	return httpclient.Post[Project](ctx, c.http, "/admin/reject/"+escapeID(id), nil)
}

// RejectProjectWithObservation rejects a project and records the reviewer note.
func (c *Client) RejectProjectWithObservation(ctx context.Context, id ID, observation string) httpclient.Response[MessageResult] {
	return httpclient.Post[MessageResult](ctx, c.http, "/admin/reject/"+escapeID(id), newObservation(observation))
}

// DashboardStats fetches the admin overview counters.
func (c *Client) DashboardStats(ctx context.Context) httpclient.Response[DashboardStats] {
	return httpclient.Get[DashboardStats](ctx, c.http, "/admin/get-dashboard-stats", nil)
}

func newObservation(text string) Observation {
	return Observation{Observacion: strings.TrimSpace(text), Timestamp: time.Now().UTC()}
}

func escapeID(id ID) string {
	return url.PathEscape(string(id))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

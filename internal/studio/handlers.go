package studio

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/api"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/forms"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/reports"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/studio/common"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

const (
	localSession = "session"
	localView    = "view"
	localEntity  = "entity"
	localFresh   = "fresh"
)

// withSession attaches the caller's view session. A browser tab names its
// session in TabHeader and gets the id echoed back; callers without the
// header fall back to the cookie.
func (s *Server) withSession(c *fiber.Ctx) error {
	if tab := c.Get(TabHeader); tab != "" {
		sess, created := s.sessions.Acquire(tab)
		c.Set(TabHeader, sess.ID)
		c.Locals(localSession, sess)
		c.Locals(localFresh, created)
		return c.Next()
	}

	sess, created := s.sessions.Acquire(c.Cookies(SessionCookie))
	if created {
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	c.Locals(localSession, sess)
	c.Locals(localFresh, created)
	return c.Next()
}

func (s *Server) withEntity(c *fiber.Ctx) error {
	e := types.Entity(c.Params("entity"))
	if !e.Valid() {
		return common.JSONError(c, fiber.StatusNotFound, "unknown entity "+c.Params("entity"))
	}
	c.Locals(localEntity, e)
	return c.Next()
}

func (s *Server) withView(c *fiber.Ctx) error {
	e := types.Entity(c.Params("entity"))
	v, ok := session(c).View(e)
	if !ok {
		return common.JSONError(c, fiber.StatusNotFound, "unknown entity "+c.Params("entity"))
	}
	c.Locals(localView, v)
	return c.Next()
}

func session(c *fiber.Ctx) *Session {
	return c.Locals(localSession).(*Session)
}

func view(c *fiber.Ctx) entityView {
	return c.Locals(localView).(entityView)
}

func entity(c *fiber.Ctx) types.Entity {
	return c.Locals(localEntity).(types.Entity)
}

func freshSession(c *fiber.Ctx) bool {
	fresh, _ := c.Locals(localFresh).(bool)
	return fresh
}

// handleViewState returns the view at once, or long-polls until its version
// passes ?after. An expired poll still answers with the current state. A
// session created by this request answers at once, since ?after refers to
// versions of the one it replaced.
func (s *Server) handleViewState(c *fiber.Ctx) error {
	v := view(c)
	raw := c.Query("after")
	if raw == "" || freshSession(c) {
		return common.JSON(c, v.State())
	}

	n := common.QueryInt(raw, 0)
	if n < 0 {
		n = 0
	}
	after := uint64(n)
	ctx, cancel := context.WithTimeout(c.UserContext(), s.pollTimeout)
	defer cancel()

	st, _ := v.Wait(ctx, after)
	return common.JSON(c, st)
}

func (s *Server) handleViewPage(c *fiber.Ctx) error {
	var req common.PageRequest
	if err := c.BodyParser(&req); err != nil {
		return common.JSONError(c, fiber.StatusBadRequest, "Invalid request")
	}

	v := view(c)
	switch strings.ToLower(req.Action) {
	case "next":
		v.NextPage()
	case "prev", "previous":
		v.PrevPage()
	case "":
		v.SetPage(req.Page)
	default:
		return common.JSONError(c, fiber.StatusBadRequest, "unknown page action "+req.Action)
	}
	return common.JSON(c, v.State())
}

func (s *Server) handleViewFilter(c *fiber.Ctx) error {
	var req common.FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return common.JSONError(c, fiber.StatusBadRequest, "Invalid request")
	}
	v := view(c)
	v.Filter(req.Text, req.Immediate)
	return common.JSON(c, v.State())
}

func (s *Server) handleViewSort(c *fiber.Ctx) error {
	var req common.SortRequest
	if err := c.BodyParser(&req); err != nil || req.Key == "" {
		return common.JSONError(c, fiber.StatusBadRequest, "Invalid request")
	}
	v := view(c)
	v.SetSort(req.Key, listview.ParseSortDirection(req.Direction))
	return common.JSON(c, v.State())
}

func (s *Server) handleViewSize(c *fiber.Ctx) error {
	var req common.SizeRequest
	if err := c.BodyParser(&req); err != nil {
		return common.JSONError(c, fiber.StatusBadRequest, "Invalid request")
	}
	v := view(c)
	v.SetPageSize(req.Size)
	return common.JSON(c, v.State())
}

func (s *Server) handleViewReload(c *fiber.Ctx) error {
	v := view(c)
	v.Reload()
	return common.JSON(c, v.State())
}

func (s *Server) handleCreate(c *fiber.Ctx) error {
	out, err := s.service.Save(c.UserContext(), entity(c), 0, c.Body())
	if err != nil {
		return s.mutationError(c, err, "Erro ao salvar")
	}
	return c.Status(fiber.StatusCreated).JSON(common.Response{Success: true, Message: "Registro criado", Data: out})
}

func (s *Server) handleUpdate(c *fiber.Ctx) error {
	id, err := common.ParseID(c.Params("id"))
	if err != nil {
		return common.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	out, err := s.service.Save(c.UserContext(), entity(c), id, c.Body())
	if err != nil {
		return s.mutationError(c, err, "Erro ao salvar")
	}
	return c.JSON(common.Response{Success: true, Message: "Registro atualizado", Data: out})
}

func (s *Server) handleDelete(c *fiber.Ctx) error {
	id, err := common.ParseID(c.Params("id"))
	if err != nil {
		return common.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := s.service.Delete(c.UserContext(), entity(c), id); err != nil {
		return s.mutationError(c, err, "Erro ao deletar")
	}
	return common.JSONMessage(c, "Registro deletado")
}

// mutationError maps a failed save or delete onto a status: 422 for field
// errors, 400 for a bad body, the backend status for server errors and 502
// when the backend could not be reached.
func (s *Server) mutationError(c *fiber.Ctx, err error, fallback string) error {
	if forms.IsValidation(err) {
		return common.JSONValidation(c, "Verifique os campos destacados", forms.Fields(err))
	}
	if errors.Is(err, ErrBadPayload) {
		return common.JSONError(c, fiber.StatusBadRequest, "Invalid request")
	}

	s.log.WithError(err).WithField("entity", entity(c)).Warn("mutation failed")

	var se *api.ServerError
	if errors.As(err, &se) {
		if se.NotFound() && se.Detail == "" {
			return common.JSONError(c, fiber.StatusNotFound, "Registro não encontrado")
		}
		return common.JSONError(c, se.Status, api.UserMessage(err, fallback))
	}
	return common.JSONError(c, fiber.StatusBadGateway, api.UserMessage(err, fallback))
}

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	d, err := s.service.Dashboard(c.UserContext())
	if err != nil {
		s.log.WithError(err).Warn("dashboard load failed")
		return common.JSONError(c, fiber.StatusBadGateway, api.UserMessage(err, "Erro ao carregar o dashboard"))
	}
	return common.JSON(c, d)
}

// handleReport loads a report page through the session's report view. A
// kind switch rewinds to the first page.
func (s *Server) handleReport(c *fiber.Ctx) error {
	kind, err := reports.ParseKind(c.Params("kind"))
	if err != nil {
		return common.JSONError(c, fiber.StatusNotFound, err.Error())
	}

	rv := session(c).Reports
	page := common.QueryInt(c.Query("page"), 0)
	size := common.QueryInt(c.Query("size"), 0)
	if rv.Snapshot().Kind != kind {
		page = 0
	}

	snap := rv.Load(c.UserContext(), kind, page, size)
	if snap.Error != "" {
		return c.Status(fiber.StatusBadGateway).JSON(common.Response{Success: false, Message: snap.Error, Data: reportPayload(snap)})
	}
	return common.JSON(c, reportPayload(snap))
}

// ReportPayload is the JSON shape of a report page: rows flattened to their
// column keys, in column order.
type ReportPayload struct {
	Kind     reports.Kind       `json:"kind"`
	Label    string             `json:"label"`
	Columns  []reports.Column   `json:"columns"`
	Rows     []map[string]any   `json:"rows"`
	PageInfo *listview.PageInfo `json:"pageInfo"`
	Summary  map[string]string  `json:"summary"`
	Page     int                `json:"page"`
}

func reportPayload(snap reports.Snapshot) ReportPayload {
	out := ReportPayload{
		Kind:     snap.Kind,
		Label:    snap.Kind.Label(),
		Columns:  snap.Kind.Columns(),
		Rows:     make([]map[string]any, 0, len(snap.Result.Rows)),
		PageInfo: snap.Result.PageInfo,
		Summary:  make(map[string]string, len(snap.Result.Summary)),
		Page:     snap.Page,
	}
	for _, row := range snap.Result.Rows {
		out.Rows = append(out.Rows, reports.Record(snap.Kind, row))
	}
	for k, v := range snap.Result.Summary {
		out.Summary[k] = v.String()
	}
	return out
}

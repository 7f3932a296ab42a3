package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/app"
	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/domain"
)

type Handler struct {
	svc *app.Roulette
}

func NewHandler(svc *app.Roulette) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.POST("/v1/spin", h.Spin)
	e.GET("/v1/state", h.State)
	e.GET("/v1/wheel", h.Wheel)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Spin triggers a new spin. While a spin is in flight the request is
// rejected with 409 and nothing changes server-side.
func (h *Handler) Spin(c echo.Context) error {
	sess, err := h.svc.Spin()
	if err != nil {
		if errors.Is(err, domain.ErrSpinInProgress) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		}
		requestID, _ := c.Get("request_id").(string)
		slog.Error("spin failed", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusAccepted, SpinResponse{
		SpinID:         sess.ID,
		TargetRotation: sess.Target,
		SpinDurationMS: h.svc.SpinDuration().Milliseconds(),
	})
}

func (h *Handler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, toStateResponse(h.svc.Snapshot()))
}

func (h *Handler) Wheel(c echo.Context) error {
	snap := h.svc.Snapshot()
	cats := make([]string, len(snap.Categories))
	for i, cat := range snap.Categories {
		cats[i] = string(cat)
	}
	return c.JSON(http.StatusOK, WheelResponse{
		Categories:     cats,
		SegmentAngle:   domain.SegmentAngle,
		SpinDurationMS: h.svc.SpinDuration().Milliseconds(),
	})
}

func toStateResponse(snap app.Snapshot) StateResponse {
	resp := StateResponse{
		Phase:    string(snap.Phase),
		Rotation: snap.Rotation,
		SpinID:   snap.SpinID,
	}
	if snap.Report != nil {
		resp.Report = &ReportResponse{
			Category:  string(snap.Report.Category),
			Player:    snap.Report.Player,
			Diagnosis: snap.Report.Diagnosis,
			Timeline:  snap.Report.Timeline,
			Quote:     snap.Report.Quote,
			CapImpact: snap.Report.CapImpact,
		}
	}
	return resp
}

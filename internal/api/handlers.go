package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/udisondev/wayfinder/internal/model"
	"github.com/udisondev/wayfinder/internal/navigator"
	"github.com/udisondev/wayfinder/internal/route"
)

// FloorSummary is a floor without its walls.
type FloorSummary struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Level int         `json:"level"`
	POIs  []model.POI `json:"pois"`
}

// RouteRequest selects each endpoint by POI id or by point.
type RouteRequest struct {
	StartPOI   string       `json:"start_poi,omitempty"`
	Start      *model.Point `json:"start,omitempty"`
	EndPOI     string       `json:"end_poi,omitempty"`
	End        *model.Point `json:"end,omitempty"`
	Accessible bool         `json:"accessible"`
	// At asks for the position reached after walking this many feet.
	At *float64 `json:"at,omitempty"`
}

// RouteResponse is the body of POST /api/route.
type RouteResponse struct {
	Found        bool                `json:"found"`
	Path         []model.Point       `json:"path,omitempty"`
	Instructions []model.Instruction `json:"instructions,omitempty"`
	Distance     float64             `json:"distance,omitempty"`
	Position     *model.Point        `json:"position,omitempty"`
	Message      string              `json:"message,omitempty"`
}

// Floors lists every floor with its POIs.
func (h *Handler) Floors(c *gin.Context) {
	m := h.nav.Map()
	out := make([]FloorSummary, 0, len(m.Floors))
	for _, f := range m.Floors {
		pois := f.POIs
		if pois == nil {
			pois = []model.POI{}
		}
		out = append(out, FloorSummary{ID: f.ID, Name: f.Name, Level: f.Level, POIs: pois})
	}
	c.JSON(http.StatusOK, out)
}

// SearchPOIs matches ?q= against POI names and types. Without q it lists all.
func (h *Handler) SearchPOIs(c *gin.Context) {
	m := h.nav.Map()
	q := c.Query("q")

	var pois []model.POI
	if q == "" {
		pois = m.POIs()
	} else {
		pois = m.SearchPOIs(q)
	}
	if pois == nil {
		pois = []model.POI{}
	}
	c.JSON(http.StatusOK, pois)
}

// GetPOI returns one POI by id.
func (h *Handler) GetPOI(c *gin.Context) {
	p := h.nav.Map().POI(c.Param("id"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "poi not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Route computes a route and returns the path with instructions.
func (h *Handler) Route(c *gin.Context) {
	res, req, ok := h.route(c)
	if !ok {
		return
	}
	resp := RouteResponse{
		Found:        true,
		Path:         res.Path,
		Instructions: res.Instructions,
		Distance:     res.Distance,
	}
	if req.At != nil {
		if p, ok := res.PositionAt(*req.At); ok {
			resp.Position = &p
		}
	}
	c.JSON(http.StatusOK, resp)
}

// RouteGeoJSON computes a route and returns it as a GeoJSON FeatureCollection.
func (h *Handler) RouteGeoJSON(c *gin.Context) {
	res, _, ok := h.route(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res.FeatureCollection())
}

// route binds the request and runs the navigator. On failure it writes the
// error response and returns false.
func (h *Handler) route(c *gin.Context) (*navigator.Result, RouteRequest, bool) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, RouteResponse{Message: "invalid request: " + err.Error()})
		return nil, req, false
	}

	res, err := h.nav.Route(c.Request.Context(), navigator.Request{
		StartPOI:   req.StartPOI,
		Start:      req.Start,
		EndPOI:     req.EndPOI,
		End:        req.End,
		Accessible: req.Accessible,
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			slog.Error("route failed", "error", err)
		}
		c.JSON(status, RouteResponse{Message: err.Error()})
		return nil, req, false
	}
	return res, req, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, navigator.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, navigator.ErrPOINotFound),
		errors.Is(err, route.ErrFloorNotFound),
		errors.Is(err, route.ErrUnreachable):
		return http.StatusNotFound
	case errors.Is(err, route.ErrEndpointNotWalkable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, navigator.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

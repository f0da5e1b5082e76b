package api

import (
	"errors"
	"log/slog"
	"net/http"

	reqdto "seat-reservation/internal/handler/dto/request"
	resdto "seat-reservation/internal/handler/dto/response"
	"seat-reservation/internal/handler/httperr"
	"seat-reservation/internal/handler/middleware"
	"seat-reservation/internal/pkg/errs"
	"seat-reservation/internal/usecase"
	"seat-reservation/internal/usecase/commands"
	"seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errUnauthenticated = errors.New("caller identity missing from context")

type SeatHandler struct {
	cmds      commands.SeatCommands
	q         queries.SeatQueries
	reclaimer usecase.ExpiryReclaimer
}

func NewSeatHandler(cmds commands.SeatCommands, q queries.SeatQueries, reclaimer usecase.ExpiryReclaimer) *SeatHandler {
	return &SeatHandler{cmds: cmds, q: q, reclaimer: reclaimer}
}

// @Summary List seats
// @Description List every seat, optionally filtered by room
// @Tags seats
// @Produce json
// @Security BearerAuth
// @Param room query string false "Room (white or staff)"
// @Success 200 {object} resdto.SeatListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /seats [get]
func (h *SeatHandler) List(c *gin.Context) {
	var query reqdto.ListSeatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	views, err := h.q.ListSeats(c.Request.Context(), query.Room)
	if err != nil {
		abortWithSeatError(c, err)
		return
	}
	seats, err := resdto.FromSeatViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.SeatListResponse{Seats: seats})
}

// @Summary Get seat
// @Description Get a single seat by its number
// @Tags seats
// @Produce json
// @Security BearerAuth
// @Param seatNumber path string true "Seat number (e.g. W01)"
// @Success 200 {object} resdto.SeatResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /seats/{seatNumber} [get]
func (h *SeatHandler) Get(c *gin.Context) {
	view, err := h.q.GetSeat(c.Request.Context(), c.Param("seatNumber"))
	if err != nil {
		abortWithSeatError(c, err)
		return
	}
	h.respondSeat(c, http.StatusOK, view)
}

// @Summary My reservation
// @Description Get the seat currently held by the caller
// @Tags seats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.MyReservationResponse
// @Failure 401 {object} httperr.Response
// @Router /seats/me [get]
func (h *SeatHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	view, err := h.q.MyReservation(c.Request.Context(), userID)
	if err != nil {
		abortWithSeatError(c, err)
		return
	}
	var resp resdto.MyReservationResponse
	if view != nil {
		if resp.Reservation, err = resdto.FromSeatView(view); err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Reserve seat
// @Description Hold a seat for the caller for the given number of hours
// @Tags seats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param seatNumber path string true "Seat number (e.g. W01)"
// @Param request body reqdto.ReserveSeatRequest true "Reserve request"
// @Success 200 {object} resdto.SeatResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /seats/{seatNumber}/reserve [post]
func (h *SeatHandler) Reserve(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.ReserveSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Reserve(c.Request.Context(), req.ToInput(c.Param("seatNumber"), userID))
	if err != nil {
		abortWithSeatError(c, err)
		return
	}
	h.respondSeat(c, http.StatusOK, view)
}

// @Summary Release seat
// @Description Release a seat held by the caller (administrators may release any seat)
// @Tags seats
// @Produce json
// @Security BearerAuth
// @Param seatNumber path string true "Seat number (e.g. W01)"
// @Success 200 {object} resdto.SeatResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /seats/{seatNumber}/release [post]
func (h *SeatHandler) Release(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)
	view, err := h.cmds.Release(c.Request.Context(), commands.ReleaseSeatInput{
		SeatNumber:       c.Param("seatNumber"),
		RequesterID:      userID,
		RequesterIsAdmin: role.IsAdmin(),
	})
	if err != nil {
		abortWithSeatError(c, err)
		return
	}
	h.respondSeat(c, http.StatusOK, view)
}

// @Summary Initialize seats
// @Description Drop every seat and recreate the default layout (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.InitializeResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /admin/seats/initialize [post]
func (h *SeatHandler) Initialize(c *gin.Context) {
	count, err := h.cmds.Reinitialize(c.Request.Context())
	if err != nil {
		abortWithSeatError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.InitializeResponse{Created: count})
}

// @Summary Reclaim expired seats
// @Description Run an expiry sweep immediately (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReclaimResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /admin/seats/reclaim [post]
func (h *SeatHandler) Reclaim(c *gin.Context) {
	report, err := h.reclaimer.SweepNow(c.Request.Context())
	if err != nil {
		abortWithSeatError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReclaimReport(report))
}

func (h *SeatHandler) respondSeat(c *gin.Context, status int, view *queries.SeatView) {
	res, err := resdto.FromSeatView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}

func abortWithSeatError(c *gin.Context, err error) {
	var already *commands.AlreadyHasReservationError
	switch {
	case errors.As(err, &already):
		httperr.AbortWithError(c, http.StatusConflict, err, "User already has a reservation", gin.H{"seatNumber": already.SeatNumber})
	case errs.Is(err, errs.ErrSeatNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Seat not found", nil)
	case errs.Is(err, errs.ErrSeatOccupied):
		httperr.AbortWithError(c, http.StatusConflict, err, "Seat is already occupied", nil)
	case errs.Is(err, errs.ErrInvalidHours):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation hours", nil)
	case errs.Is(err, errs.ErrInvalidRoom):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room", nil)
	case errs.Is(err, errs.ErrNotAuthorized):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not authorized to release this seat", nil)
	case errs.Is(err, errs.ErrReservationInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Another reservation is in progress", nil)
	case errs.Is(err, errs.ErrStorageUnavailable):
		slog.Error("seat storage unavailable", "error", err, "path", c.Request.URL.Path, "request_id", middleware.GetRequestID(c))
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Service temporarily unavailable", nil)
	default:
		slog.Error("unexpected seat error", "error", err, "path", c.Request.URL.Path, "request_id", middleware.GetRequestID(c))
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

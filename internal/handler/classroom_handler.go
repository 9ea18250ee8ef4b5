package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roomfinder/roomfinder-backend/internal/availability"
	"github.com/roomfinder/roomfinder-backend/internal/model"
	"github.com/roomfinder/roomfinder-backend/internal/response"
	"github.com/roomfinder/roomfinder-backend/internal/service"
	"github.com/roomfinder/roomfinder-backend/internal/validator"
)

// ClassroomFinder is the catalog surface the HTTP layer needs.
type ClassroomFinder interface {
	Search(ctx context.Context, c availability.Criteria) ([]model.Classroom, error)
	AvailableNow(ctx context.Context, c availability.Criteria, now time.Time) (*service.CurrentAvailability, error)
}

// ClassroomHandler serves the classroom catalog and its reference data.
type ClassroomHandler struct {
	finder ClassroomFinder
	now    func() time.Time
}

// NewClassroomHandler creates a new ClassroomHandler.
func NewClassroomHandler(finder ClassroomFinder) *ClassroomHandler {
	return &ClassroomHandler{finder: finder, now: time.Now}
}

// ListClassrooms godoc
// GET /api/classrooms
// Returns the catalog as a bare JSON array, the shape the browser UI reads.
// block, day and time are matched verbatim; unknown values match nothing.
// A floor that is not a positive integer matches nothing as well.
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	criteria := availability.Criteria{
		Block:    strings.TrimSpace(c.Query("block")),
		Day:      strings.TrimSpace(c.Query("day")),
		TimeSlot: strings.TrimSpace(c.Query("time")),
	}
	if raw := strings.TrimSpace(c.Query("floor")); raw != "" {
		floor, err := strconv.Atoi(raw)
		if err != nil || floor < 1 {
			c.JSON(http.StatusOK, []model.Classroom{})
			return
		}
		criteria.Floor = floor
	}

	records, err := h.finder.Search(c.Request.Context(), criteria)
	if err != nil {
		_ = c.Error(err)
		response.Reject(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.JSON(http.StatusOK, records)
}

// SearchClassrooms godoc
// GET /api/v1/classrooms
// Validated search; echoes the applied criteria next to the matches.
func (h *ClassroomHandler) SearchClassrooms(c *gin.Context) {
	var req model.SearchClassroomsRequest
	if fields := validator.BindQuery(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	criteria := criteriaFromRequest(req)
	if criteria.Block != "" && criteria.Floor != 0 && !availability.IsValidFloor(criteria.Block, criteria.Floor) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"floor": "floor does not exist in block " + criteria.Block,
		})
		return
	}

	records, err := h.finder.Search(c.Request.Context(), criteria)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"criteria":   criteria,
		"classrooms": records,
	})
}

// AvailableNow godoc
// GET /api/v1/classrooms/available-now
// Applies the current weekday and slot to the other criteria. The optional
// `at` query (RFC3339) replaces the server clock.
func (h *ClassroomHandler) AvailableNow(c *gin.Context) {
	var req model.SearchClassroomsRequest
	if fields := validator.BindQuery(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	now := h.now()
	if raw := c.Query("at"); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
				"at": "at must be an RFC3339 timestamp",
			})
			return
		}
		now = at
	}

	result, err := h.finder.AvailableNow(c.Request.Context(), criteriaFromRequest(req), now)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListTimeSlots godoc
// GET /api/v1/timeslots
func (h *ClassroomHandler) ListTimeSlots(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"timeslots": availability.Slots()})
}

type blockInfo struct {
	Name   string `json:"name"`
	Floors []int  `json:"floors"`
}

// ListBlocks godoc
// GET /api/v1/blocks
// Returns every block with its floors and the day list the filter offers.
func (h *ClassroomHandler) ListBlocks(c *gin.Context) {
	names := availability.Blocks()
	blocks := make([]blockInfo, 0, len(names))
	for _, name := range names {
		blocks = append(blocks, blockInfo{Name: name, Floors: availability.FloorsForBlock(name)})
	}

	response.Success(c, http.StatusOK, gin.H{
		"blocks": blocks,
		"days":   availability.FilterDays(),
	})
}

// ListFloors godoc
// GET /api/v1/blocks/:block/floors
// Unknown blocks yield an empty list, not an error.
func (h *ClassroomHandler) ListFloors(c *gin.Context) {
	block := c.Param("block")
	response.Success(c, http.StatusOK, gin.H{
		"block":  block,
		"floors": availability.FloorsForBlock(block),
	})
}

func criteriaFromRequest(req model.SearchClassroomsRequest) availability.Criteria {
	return availability.Criteria{
		Block:    req.Block,
		Floor:    req.Floor,
		Day:      req.Day,
		TimeSlot: req.Time,
	}
}

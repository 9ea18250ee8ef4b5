package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/roomfinder/roomfinder-backend/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func queryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/classrooms?"+rawQuery, nil)
	return c
}

func TestBindQueryAcceptsKnownValues(t *testing.T) {
	c := queryContext("block=CB&floor=3&day=Friday&time=2%3A00+PM+-+3%3A00+PM")

	var req model.SearchClassroomsRequest
	fields := BindQuery(c, &req)

	assert.Nil(t, fields)
	assert.Equal(t, model.SearchClassroomsRequest{Block: "CB", Floor: 3, Day: "Friday", Time: "2:00 PM - 3:00 PM"}, req)
}

func TestBindQueryEmptyIsValid(t *testing.T) {
	var req model.SearchClassroomsRequest
	assert.Nil(t, BindQuery(queryContext(""), &req))
}

func TestBindQueryTranslatesCustomTags(t *testing.T) {
	c := queryContext("block=ZZ&day=Someday&time=noon&floor=0")

	var req model.SearchClassroomsRequest
	fields := BindQuery(c, &req)

	assert.Equal(t, "block must be one of AB1, AB2, CB", fields["block"])
	assert.Equal(t, "day must be a weekday name such as Monday", fields["day"])
	assert.Equal(t, "time must be a time slot such as 9:00 AM - 10:00 AM", fields["time"])
	assert.NotContains(t, fields, "floor")
}

func TestBindReportsJSONFieldNames(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"not-an-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req model.LoginRequest
	fields := Bind(c, &req)

	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestBindReportsSyntaxErrorsAsDetail(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req model.LoginRequest
	fields := Bind(c, &req)

	assert.Contains(t, fields, "detail")
}

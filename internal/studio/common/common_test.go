package common

import (
	"embed"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed static/*
var testStaticFS embed.FS

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	app := NewApp(testStaticFS, log)
	SetupStaticFS(app, testStaticFS)
	app.Get("/api/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/api/panic", func(c *fiber.Ctx) error {
		panic("kaboom")
	})
	return app
}

func TestAPIErrorsAreJSON(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "short and stout", body.Message)
}

func TestPanicIsRecovered(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestCommonStaticIsServed(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/common/static/js/common.js", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "formatMoney")
}

func TestFindAvailablePortSkipsBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	busy := ln.Addr().(*net.TCPAddr).Port
	assert.NotEqual(t, busy, FindAvailablePort(busy))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		_, err := ParseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestQueryInt(t *testing.T) {
	assert.Equal(t, 7, QueryInt("", 7))
	assert.Equal(t, 7, QueryInt("x", 7))
	assert.Equal(t, 3, QueryInt("3", 7))
}

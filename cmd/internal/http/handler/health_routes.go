package handler

import (
	"net/http"
	"notekeeper/cmd/internal/contract"
	"notekeeper/cmd/internal/utils"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness only; it never touches the store,
// so it keeps answering while the database is down.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, &contract.HealthResponse{
		Status:    contract.HealthStatusOK,
		Timestamp: utils.FormatISO8601(utils.NowUTC()),
	})
}

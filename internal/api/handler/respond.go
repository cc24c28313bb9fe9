package handler

import "github.com/labstack/echo/v4"

// apiResponse is the uniform success/failure envelope for all API responses.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, apiResponse{Success: false, Message: message})
}

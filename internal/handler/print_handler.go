package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"printbridge/internal/errors"
	"printbridge/internal/middleware"
	"printbridge/internal/model"
	"printbridge/internal/printer"
	"printbridge/internal/service"
)

// PrintHandler handles the printer command endpoints. Deployments with a
// fixed printer configure its address once; requests may still override it
// with another allow-listed target.
type PrintHandler struct {
	printService service.PrintService
	defaultHost  string
	defaultPort  int
}

// NewPrintHandler creates a new print handler.
func NewPrintHandler(printService service.PrintService, defaultHost string, defaultPort int) *PrintHandler {
	return &PrintHandler{
		printService: printService,
		defaultHost:  defaultHost,
		defaultPort:  defaultPort,
	}
}

// SendCommandRequest represents a print command request. IP and port fall
// back to the deployment's configured printer when omitted.
type SendCommandRequest struct {
	CodeType string            `json:"codeType" validate:"required"`
	Options  map[string]string `json:"options" validate:"required"`
	Text     *string           `json:"text" validate:"required"`
	IP       string            `json:"ip"`
	Port     int               `json:"port"`
}

// SendCommandResponse is the device exchange outcome.
type SendCommandResponse struct {
	Result   string `json:"result"`
	Response string `json:"response"`
}

// SendCommand godoc
// @Summary Build and send a label command to the printer
// @Tags printer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendCommandRequest true "Print job"
// @Success 200 {object} SendCommandResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /send-command [post]
func (h *PrintHandler) SendCommand(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no valid token provided")
	}

	var req SendCommandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	host, port := req.IP, req.Port
	if host == "" {
		host = h.defaultHost
	}
	if port == 0 {
		port = h.defaultPort
	}

	job := &model.PrintJob{
		CodeType: req.CodeType,
		Options:  req.Options,
		Text:     *req.Text,
		Host:     host,
		Port:     port,
	}

	response, err := h.printService.SendCommand(c.Request().Context(), identity.Email, job)
	if err != nil {
		if printer.IsDeviceError(err) {
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "DEVICE_ERROR",
			})
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SendCommandResponse{
		Result:   "Command sent successfully",
		Response: response,
	})
}

// PrinterData godoc
// @Summary Return the printer's status snapshot
// @Tags printer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /printer-data [get]
func (h *PrintHandler) PrinterData(c echo.Context) error {
	// Placeholder payload until the device exposes a real status query.
	return c.JSON(http.StatusOK, echo.Map{
		"result": "Printer data retrieved successfully",
		"data":   echo.Map{"status": "ready"},
	})
}

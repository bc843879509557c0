// Package api implements the Echo-based HTTP handlers.
package api

import (
	"errors"
	"math"
	"net/http"

	models "ChartSense/internal/domain/models"
	"ChartSense/internal/usecase"
	xhttp "ChartSense/pkg/http"
	xlogger "ChartSense/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyzeEchoHandler exposes the analysis pipeline over HTTP.
type AnalyzeEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
}

func NewAnalyzeEchoHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer) *AnalyzeEchoHandler {
	return &AnalyzeEchoHandler{logger: logger, analyzer: analyzer}
}

func (h *AnalyzeEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.GET("/analyze", h.Analyze)
}

// AnalyzeResponse mirrors the flat wire shape clients already consume.
// The capital block fields are explicit nulls when no capital was given.
type AnalyzeResponse struct {
	SymbolInput  string   `json:"symbol_input"`
	SymbolUsed   string   `json:"symbol_used"`
	TodayClose   float64  `json:"today_close"`
	MA5          float64  `json:"ma5"`
	MA20         float64  `json:"ma20"`
	VolumeToday  int64    `json:"volume_today"`
	VolumePrev   int64    `json:"volume_prev"`
	RSI          *float64 `json:"rsi"`
	Score        int      `json:"score"`
	Signal       string   `json:"signal"`
	SignalLabel  string   `json:"signal_label"`
	Reasons      []string `json:"reasons"`
	StrategyText string   `json:"strategy_text"`

	StopLossPrice float64 `json:"stop_loss_price"`
	TP1Price      float64 `json:"tp1_price"`
	TP2Price      float64 `json:"tp2_price"`

	CapitalInput   *float64 `json:"capital_input"`
	PositionBudget *float64 `json:"position_budget"`
	SharesTotal    *int64   `json:"shares_total"`
	Pos1Shares     *int64   `json:"pos1_shares"`
	Pos2Shares     *int64   `json:"pos2_shares"`
	Pos3Shares     *int64   `json:"pos3_shares"`
	Pos1Amount     *float64 `json:"pos1_amount"`
	Pos2Amount     *float64 `json:"pos2_amount"`
	Pos3Amount     *float64 `json:"pos3_amount"`
}

func (h *AnalyzeEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		// A missing symbol keeps its dedicated wire code rather than the
		// generic required-field shape.
		if errs, ok := verr.([]xhttp.ValidationError); ok {
			for _, ve := range errs {
				if ve.Field == "Symbol" && ve.Code == "ERR_REQUIRED" {
					return xhttp.AppErrorResponse(c, xhttp.BadRequestError("no_symbol", "symbol is required"))
				}
			}
		}
		return xhttp.BadRequestResponse(c, verr)
	}

	report, err := h.analyzer.Analyze(c.Request().Context(), req.Symbol, req.Capital, req.Preset)
	if err != nil {
		h.logger.Error("analyze usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, buildAnalyzeResponse(report))
}

func (h *AnalyzeEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func buildAnalyzeResponse(r *models.AnalysisReport) *AnalyzeResponse {
	resp := &AnalyzeResponse{
		SymbolInput:   r.SymbolInput,
		SymbolUsed:    r.SymbolUsed,
		TodayClose:    r.Snapshot.Close,
		MA5:           round2(r.Snapshot.MA5),
		MA20:          round2(r.Snapshot.MA20),
		VolumeToday:   r.Snapshot.VolumeToday,
		VolumePrev:    r.Snapshot.VolumePrev,
		Score:         r.Signal.Score,
		Signal:        string(r.Signal.Class),
		SignalLabel:   r.Signal.Class.Label(),
		Reasons:       r.Signal.Reasons,
		StrategyText:  r.Narrative,
		StopLossPrice: r.Levels.StopLoss,
		TP1Price:      r.Levels.TP1,
		TP2Price:      r.Levels.TP2,
		CapitalInput:  r.CapitalInput,
	}
	if resp.Reasons == nil {
		resp.Reasons = []string{}
	}
	if r.Snapshot.RSI != nil {
		v := round2(*r.Snapshot.RSI)
		resp.RSI = &v
	}
	if r.Plan != nil {
		p := r.Plan
		resp.PositionBudget = &p.Budget
		resp.SharesTotal = &p.SharesTotal
		resp.Pos1Shares = &p.Tranches[0].Shares
		resp.Pos2Shares = &p.Tranches[1].Shares
		resp.Pos3Shares = &p.Tranches[2].Shares
		resp.Pos1Amount = &p.Tranches[0].Amount
		resp.Pos2Amount = &p.Tranches[1].Amount
		resp.Pos3Amount = &p.Tranches[2].Amount
	}
	return resp
}

// toAppError maps analysis failure kinds onto transport errors.
func toAppError(err error) error {
	var aerr *usecase.AnalysisError
	if !errors.As(err, &aerr) {
		return xhttp.InternalError("analysis failed")
	}

	var appErr *xhttp.AppError
	switch aerr.Kind {
	case usecase.KindNoSymbol:
		appErr = xhttp.BadRequestError("no_symbol", aerr.Message)
	case usecase.KindInvalidSymbol:
		appErr = xhttp.BadRequestError("invalid_symbol", aerr.Message)
	case usecase.KindDownloadFailed:
		appErr = xhttp.BadGatewayError("download_failed", aerr.Message)
	case usecase.KindEmptyData:
		appErr = xhttp.NotFoundError("empty_data", aerr.Message)
	case usecase.KindInsufficientData:
		appErr = xhttp.UnprocessableError("insufficient_data", aerr.Message)
	default:
		appErr = xhttp.InternalError(aerr.Message)
	}
	if aerr.Symbol != "" {
		appErr = appErr.WithParam("symbol", aerr.Symbol)
	}
	return appErr
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/extract"
	"github.com/rgehrsitz/itrgo/internal/output"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// AdviceResponse carries the advisory text alongside the result it describes
type AdviceResponse struct {
	Advice string           `json:"advice"`
	Result domain.TaxResult `json:"result"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Tax Regime Comparison",
		"advice":  s.advisor != nil,
	})
}

func (s *Server) compare(c *gin.Context) {
	var input domain.TaxInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	result, err := s.evaluate(input)
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_INPUT", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// evaluate validates and compares, serving repeats from the cache
func (s *Server) evaluate(input domain.TaxInput) (domain.TaxResult, error) {
	if cached, ok := s.cache.Get(input); ok {
		return cached, nil
	}
	result, err := s.engine.Evaluate(input)
	if err != nil {
		return domain.TaxResult{}, err
	}
	s.cache.Add(input, *result)
	return *result, nil
}

func (s *Server) breakEven(c *gin.Context) {
	var req breakeven.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	result, err := s.solver.Solve(c.Request.Context(), req)
	if err != nil {
		var beErr *breakeven.BreakEvenError
		if errors.As(err, &beErr) && beErr.Operation == "validate_request" {
			s.sendError(c, http.StatusBadRequest, "INVALID_INPUT", err)
			return
		}
		s.sendError(c, http.StatusInternalServerError, "BREAKEVEN_FAILED", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) extractDeductions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "NO_FILE", err)
		return
	}
	if !strings.EqualFold(fileHeader.Header.Get("Content-Type"), "application/pdf") &&
		!strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		s.sendError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE", errors.New("only PDF documents are supported"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "UNREADABLE_FILE", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "UNREADABLE_FILE", err)
		return
	}

	extraction, err := s.extractor.FromPDF(data)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, extract.ErrNoText) {
			s.sendError(c, status, "NO_TEXT", err)
			return
		}
		s.sendError(c, status, "EXTRACTION_FAILED", err)
		return
	}
	c.JSON(http.StatusOK, extraction)
}

func (s *Server) report(c *gin.Context) {
	var input domain.TaxInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	result, err := s.evaluate(input)
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_INPUT", err)
		return
	}

	report := output.NewReport(s.engine.Rules, []domain.TaxInput{input}, []domain.TaxResult{result})
	data, err := output.PDFFormatter{}.Format(report)
	if err != nil {
		CaptureError(err, map[string]string{"endpoint": "report"})
		s.sendError(c, http.StatusInternalServerError, "REPORT_FAILED", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="tax_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (s *Server) advice(c *gin.Context) {
	if s.advisor == nil {
		s.sendError(c, http.StatusServiceUnavailable, "ADVICE_UNAVAILABLE", advisor.ErrNotConfigured)
		return
	}

	var input domain.TaxInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	result, err := s.evaluate(input)
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "INVALID_INPUT", err)
		return
	}

	text, err := s.advisor.Advise(c.Request.Context(), input, result)
	if err != nil {
		CaptureError(err, map[string]string{"endpoint": "advice"})
		s.sendError(c, http.StatusBadGateway, "ADVICE_FAILED", err)
		return
	}
	c.JSON(http.StatusOK, AdviceResponse{Advice: text, Result: result})
}

// sendError writes a structured error response
func (s *Server) sendError(c *gin.Context, status int, code string, err error) {
	log.Printf("Error: %s - %v", code, err)
	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: err.Error(),
		Code:    status,
	})
}

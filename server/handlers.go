package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alun/pai/config"
	"github.com/alun/pai/fxblue"
	"github.com/alun/pai/report"
	"github.com/alun/pai/store"
)

// SummaryResponse bundles everything the summary endpoint computes over
// one run.
type SummaryResponse struct {
	Run      store.Run           `json:"run"`
	Summary  report.Summary      `json:"summary"`
	Symbols  []report.SymbolStat `json:"symbols"`
	GridRuns []report.GridRun    `json:"grid_runs"`
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}

func (s *Server) listRuns(c *gin.Context) {
	runs, err := s.st.ListRuns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) getRun(c *gin.Context) {
	run, err := s.st.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// getRows returns the run's canonical rows, optionally narrowed by the
// comment, magic, from and to query parameters.
func (s *Server) getRows(c *gin.Context) {
	t, err := s.st.LoadTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := f.Apply(t).Rows
	if rows == nil {
		rows = []fxblue.Row{}
	}
	c.JSON(http.StatusOK, rows)
}

// getSummary computes statistics for one run. Filters come from the query
// the way they come from flags on the stats command; capital defaults to
// the run's detected deposit total and can be forced with ?capital=.
func (s *Server) getSummary(c *gin.Context) {
	ctx := c.Request.Context()

	run, err := s.st.GetRun(ctx, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	t, err := s.st.LoadTable(ctx, run.ID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	capital, err := s.capitalFromQuery(c, t)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered := f.Apply(t)
	gap, _ := s.cfg.Analysis.ParseGridGap()

	symbols := report.BySymbol(filtered)
	if symbols == nil {
		symbols = []report.SymbolStat{}
	}
	gridRuns := report.GridRuns(filtered, gap)
	if gridRuns == nil {
		gridRuns = []report.GridRun{}
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Run:      run,
		Summary:  report.Summarize(filtered, capital),
		Symbols:  symbols,
		GridRuns: gridRuns,
	})
}

func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func filterFromQuery(c *gin.Context) (report.Filter, error) {
	var f report.Filter
	f.Comment = c.Query("comment")

	if v := c.Query("magic"); v != "" {
		magics, err := config.ParseMagics(v)
		if err != nil {
			return report.Filter{}, err
		}
		f.Magics = magics
	}
	if v := c.Query("from"); v != "" {
		t, err := report.ParseCloseBound(v, false)
		if err != nil {
			return report.Filter{}, fmt.Errorf("from: %w", err)
		}
		f.CloseFrom = t
	}
	if v := c.Query("to"); v != "" {
		t, err := report.ParseCloseBound(v, true)
		if err != nil {
			return report.Filter{}, fmt.Errorf("to: %w", err)
		}
		f.CloseTo = t
	}
	return f, nil
}

// capitalFromQuery resolves the capital base. The capital parameter wins;
// otherwise the unfiltered table's deposits decide, with the configured
// assumption as fallback.
func (s *Server) capitalFromQuery(c *gin.Context, t fxblue.Table) (float64, error) {
	if v := c.Query("capital"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil || amount <= 0 {
			return 0, fmt.Errorf("capital must be a positive number, got %q", v)
		}
		return amount, nil
	}
	a := s.cfg.Analysis
	return report.ResolveCapital(t, a.AssumedCapital, a.OverrideCapital), nil
}

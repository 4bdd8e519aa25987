package api

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schemadesk/internal/graph"
	"schemadesk/internal/output"
)

func (s *Server) handleStats(c *gin.Context) {
	Success(c, http.StatusOK, s.snapshot().Console.Stats(), "")
}

func (s *Server) handleIssues(c *gin.Context) {
	snap := s.snapshot()
	Success(c, http.StatusOK, gin.H{
		"builtAt": snap.BuiltAt,
		"issues":  snap.Console.Issues(),
	}, "")
}

func (s *Server) handleDomains(c *gin.Context) {
	Success(c, http.StatusOK, s.snapshot().Console.Stats().PerDomain, "")
}

func (s *Server) handleDomainTables(c *gin.Context) {
	cons := s.snapshot().Console
	domain := c.Param("domain")

	if !slices.Contains(cons.Domains(), domain) {
		Fail(c, http.StatusNotFound, fmt.Errorf("domain %q not found", domain), "unknown domain")
		return
	}
	Success(c, http.StatusOK, cons.TablesInDomain(domain), "")
}

func (s *Server) handleTables(c *gin.Context) {
	Success(c, http.StatusOK, s.snapshot().Console.AllTables(), "")
}

func (s *Server) handleTable(c *gin.Context) {
	cons := s.snapshot().Console
	name := c.Param("name")

	table, ok := cons.GetTable(name)
	if !ok {
		Fail(c, http.StatusNotFound, fmt.Errorf("table %q not found", name), "unknown table")
		return
	}
	Success(c, http.StatusOK, gin.H{
		"domain": cons.DomainOf(name),
		"table":  table,
	}, "")
}

func (s *Server) handleTableRelations(c *gin.Context) {
	cons := s.snapshot().Console
	name := c.Param("name")

	if _, ok := cons.GetTable(name); !ok {
		Fail(c, http.StatusNotFound, fmt.Errorf("table %q not found", name), "unknown table")
		return
	}
	Success(c, http.StatusOK, cons.RelationsFor(name), "")
}

func (s *Server) handleGraph(c *gin.Context) {
	formatter, err := output.NewFormatter(string(output.FormatMermaid))
	if err != nil {
		Fail(c, http.StatusInternalServerError, err, "formatter")
		return
	}
	diagram, err := formatter.FormatCatalog(s.snapshot().Console)
	if err != nil {
		Fail(c, http.StatusInternalServerError, err, "render diagram")
		return
	}
	Success(c, http.StatusOK, gin.H{"mermaid": diagram}, "")
}

func (s *Server) handleOrder(c *gin.Context) {
	order, err := s.snapshot().Console.Graph().TopologicalOrder()
	if err != nil {
		var cycle *graph.CycleDetectedError
		if errors.As(err, &cycle) {
			Fail(c, http.StatusConflict, err, "cycle detected")
			return
		}
		Fail(c, http.StatusInternalServerError, err, "order")
		return
	}
	Success(c, http.StatusOK, order, "")
}

// handleReload rebuilds the catalog from the domain directory and swaps the
// published snapshot. On a fatal build failure the previous snapshot stays
// published and the error is returned to the caller.
func (s *Server) handleReload(c *gin.Context) {
	snap, err := buildSnapshot(s.dir)
	if err != nil {
		s.logger.Warn("reload failed, keeping previous catalog", zap.Error(err))
		Fail(c, http.StatusUnprocessableEntity, err, "reload failed; previous catalog still active")
		return
	}
	s.current.Store(snap)
	s.logger.Info("catalog reloaded",
		zap.Int("tables", snap.Console.TotalTableCount()),
		zap.Int("relations", snap.Console.RelationCount()))
	Success(c, http.StatusOK, snap.Console.Stats(), "catalog reloaded")
}

package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/provider"
	"github.com/uiprobe/uiprobe/internal/snapshot"
	"gopkg.in/yaml.v3"
)

// toText serializes v to YAML for an MCP response body.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) handleSnapshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	flat := boolParam(params, "flat", false)

	s.providerMu.Lock()
	snap, err := snapshot.Build(s.provider, s.cache)
	s.providerMu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if flat {
		return mcp.NewToolResultText(toText(struct {
			Degraded bool             `yaml:"degraded,omitempty"`
			Nodes    []model.FlatNode `yaml:"nodes"`
		}{snap.Degraded, model.Flatten(snap.Windows)})), nil
	}
	return mcp.NewToolResultText(toText(snap)), nil
}

func (s *Server) handleFind(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	field := stringParam(params, "field", string(model.MatchText))
	value := stringParam(params, "value", "")
	exact := boolParam(params, "exact", false)
	limit := intParam(params, "limit", 10)

	if value == "" {
		return mcp.NewToolResultError("value parameter is required"), nil
	}
	switch model.MatchField(field) {
	case model.MatchText, model.MatchDescription, model.MatchType, model.MatchID:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown field %q (use text, desc, type, or id)", field)), nil
	}

	s.providerMu.Lock()
	snap, err := snapshot.Build(s.provider, s.cache)
	s.providerMu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches := model.Find(snap.Windows, model.MatchField(field), value, exact)
	total := len(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	nodes := make([]model.FlatNode, 0, len(matches))
	for _, m := range matches {
		nodes = append(nodes, model.FlatNode{
			ID:          m.ID,
			Type:        m.Type,
			Text:        m.Text,
			Description: m.Description,
			Bounds:      m.Bounds,
			Clickable:   m.Clickable,
		})
	}

	return mcp.NewToolResultText(toText(struct {
		Total   int              `yaml:"total"`
		Matches []model.FlatNode `yaml:"matches"`
	}{total, nodes})), nil
}

// resolveReport is the tool output for resolve.
type resolveReport struct {
	OK     bool   `yaml:"ok"`
	ID     string `yaml:"id"`
	Type   string `yaml:"type,omitempty"`
	Text   string `yaml:"text,omitempty"`
	Desc   string `yaml:"desc,omitempty"`
	Bounds [4]int `yaml:"b,omitempty"`
}

func (s *Server) handleResolve(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "id", "")
	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	report := resolveReport{ID: id}

	s.providerMu.Lock()
	err := snapshot.Resolve(s.provider, s.cache, id, func(h provider.Handle) error {
		attrs := h.Attributes()
		report.OK = true
		report.Type = attrs.Type
		report.Text = attrs.Text
		report.Desc = attrs.Description
		report.Bounds = attrs.Bounds
		return nil
	})
	s.providerMu.Unlock()

	if err != nil {
		return mcp.NewToolResultError(toText(struct {
			OK    bool   `yaml:"ok"`
			ID    string `yaml:"id"`
			Error string `yaml:"error"`
		}{false, id, err.Error()})), nil
	}
	return mcp.NewToolResultText(toText(report)), nil
}

func (s *Server) handleSimilarity(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	snap, err := snapshot.Build(s.provider, s.cache)
	if err != nil {
		s.providerMu.Unlock()
		return mcp.NewToolResultError(err.Error()), nil
	}
	fp := model.Fingerprint(snap.Windows)
	prev := s.lastFingerprint
	s.lastFingerprint = &fp
	s.providerMu.Unlock()

	result := struct {
		Similarity int  `yaml:"similarity"`
		Baseline   bool `yaml:"baseline,omitempty"` // first call, nothing to compare against
	}{Similarity: 100}
	if prev != nil {
		result.Similarity = model.Similarity(*prev, fp)
	} else {
		result.Baseline = true
	}
	return mcp.NewToolResultText(toText(result)), nil
}

func (s *Server) handleWaitIdle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	threshold := intParam(params, "threshold", 3)
	intervalMs := intParam(params, "interval", 500)
	timeoutSec := intParam(params, "timeout", 30)

	interval := time.Duration(intervalMs) * time.Millisecond
	deadline := time.Now().Add(time.Duration(timeoutSec) * time.Second)
	start := time.Now()

	detector := model.NewIdleDetector(threshold)
	for {
		s.providerMu.Lock()
		snap, err := snapshot.Build(s.provider, s.cache)
		s.providerMu.Unlock()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if detector.Observe(model.Fingerprint(snap.Windows)) {
			return mcp.NewToolResultText(toText(struct {
				OK      bool   `yaml:"ok"`
				Elapsed string `yaml:"elapsed"`
			}{true, fmt.Sprintf("%.1fs", time.Since(start).Seconds())})), nil
		}

		if time.Now().After(deadline) {
			return mcp.NewToolResultError(fmt.Sprintf("timed out after %ds waiting for idle UI", timeoutSec)), nil
		}

		select {
		case <-ctx.Done():
			return mcp.NewToolResultError(ctx.Err().Error()), nil
		case <-time.After(interval):
		}
	}
}

package parserlib_test_harness

import (
	"time"

	clog "github.com/vilterp/parsec/pkg/log"
	"github.com/vilterp/parsec/pkg/parserlib"
)

type ParseRequest struct {
	Language string
	Input    string
	// nil means the configured default
	Diagnostics *bool
}

// ParseResponse carries either Value or Error. A failed parse is not a
// failed request: Error, Index and Expected describe where the input went
// wrong.
type ParseResponse struct {
	Value      interface{}                `json:",omitempty"`
	Error      string                     `json:",omitempty"`
	Index      *parserlib.Index           `json:",omitempty"`
	Expected   string                     `json:",omitempty"`
	Unexpected string                     `json:",omitempty"`
	Callstack  []parserlib.CallstackEntry `json:",omitempty"`
	DurationMS float64
}

func (s *Server) parse(l clog.Loggable, req *ParseRequest) (*ParseResponse, error) {
	lang, err := s.language(req.Language)
	if err != nil {
		return nil, err
	}
	if max := s.config.Parse.MaxInputBytes; max > 0 && len(req.Input) > max {
		return nil, &inputTooLarge{Size: len(req.Input), Max: max}
	}
	diagnostics := s.config.Parse.Diagnostics
	if req.Diagnostics != nil {
		diagnostics = *req.Diagnostics
	}

	start := time.Now()
	var ctx *parserlib.Context
	if diagnostics {
		ctx = parserlib.NewContextWithCallstack(req.Input)
	} else {
		ctx = parserlib.NewContext(req.Input)
	}
	value, parseErr := lang.Grammar.Rule(lang.StartRule).ParseContext(ctx)
	duration := time.Since(start)
	s.metrics.observeParse(lang.Name, parseErr == nil, len(req.Input), duration)

	resp := &ParseResponse{
		Value:      value,
		DurationMS: float64(duration) / float64(time.Millisecond),
	}
	if cs := ctx.Callstack(); cs != nil {
		resp.Callstack = cs.Entries
	}
	if parseErr != nil {
		resp.Error = parseErr.Error()
		if pe, ok := parseErr.(*parserlib.ParseError); ok {
			idx := pe.Index()
			resp.Index = &idx
			resp.Expected = pe.Expected()
			resp.Unexpected = pe.Unexpected()
			clog.Printf(clog.FromContext(clog.WithContext(l.Ctx(), clog.LanguageKey, lang.Name)),
				"parse failed at %s: expecting %s", idx.CompactString(), pe.Expected())
		}
	}
	return resp, nil
}

package parserlib_test_harness

import (
	"net/http"

	"github.com/pkg/errors"
	clog "github.com/vilterp/parsec/pkg/log"
)

type saveSampleRequest struct {
	Language string
	Name     string
	Input    string
}

type runSampleRequest struct {
	Language    string
	Name        string
	Diagnostics *bool
}

// handleCorpus lists (GET without name), fetches (GET with name), saves
// (PUT) and deletes (DELETE) samples.
func (s *Server) handleCorpus(w http.ResponseWriter, r *http.Request) {
	if s.corpus == nil {
		writeError(w, r, &corpusDisabled{})
		return
	}
	query := r.URL.Query()
	switch r.Method {
	case http.MethodGet:
		language := query.Get("language")
		if _, err := s.language(language); err != nil {
			writeError(w, r, err)
			return
		}
		name := query.Get("name")
		if name == "" {
			samples, err := s.corpus.List(language)
			if err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, r, samples)
			return
		}
		sample, err := s.corpus.Get(language, name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, sample)

	case http.MethodPut:
		var req saveSampleRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if _, err := s.language(req.Language); err != nil {
			writeError(w, r, err)
			return
		}
		if req.Name == "" {
			writeError(w, r, &badRequest{Err: errors.New("missing sample name")})
			return
		}
		if max := s.config.Parse.MaxInputBytes; max > 0 && len(req.Input) > max {
			writeError(w, r, &inputTooLarge{Size: len(req.Input), Max: max})
			return
		}
		sample, err := s.corpus.Save(req.Language, req.Name, req.Input)
		if err != nil {
			writeError(w, r, err)
			return
		}
		clog.Printf(clog.FromContext(r.Context()), "saved sample %s/%s", sample.Language, sample.Name)
		writeJSON(w, r, sample)

	case http.MethodDelete:
		language, name := query.Get("language"), query.Get("name")
		if _, err := s.language(language); err != nil {
			writeError(w, r, err)
			return
		}
		if name == "" {
			writeError(w, r, &badRequest{Err: errors.New("missing sample name")})
			return
		}
		if err := s.corpus.Delete(language, name); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, r, &methodNotAllowed{Method: r.Method})
	}
}

// handleCorpusRun parses a saved sample with its language.
func (s *Server) handleCorpusRun(w http.ResponseWriter, r *http.Request) {
	if s.corpus == nil {
		writeError(w, r, &corpusDisabled{})
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, r, &methodNotAllowed{Method: r.Method})
		return
	}
	var req runSampleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.language(req.Language); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Name == "" {
		writeError(w, r, &badRequest{Err: errors.New("missing sample name")})
		return
	}
	sample, err := s.corpus.Get(req.Language, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := s.parse(clog.FromContext(r.Context()), &ParseRequest{
		Language:    sample.Language,
		Input:       sample.Input,
		Diagnostics: req.Diagnostics,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, resp)
}

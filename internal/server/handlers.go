package server

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/storage"
	"github.com/matzehuels/tagcloud/pkg/table"
)

// statusClientClosedRequest is the nginx convention for a request the
// client abandoned.
const statusClientClosedRequest = 499

// aggregateRequest is the JSON request envelope. Table holds a
// [table.Document].
type aggregateRequest struct {
	Options json.RawMessage `json:"options"`
	Table   json.RawMessage `json:"table"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type listResponse struct {
	Runs []storage.Run `json:"runs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	res, _, err := s.execute(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	res, opts, err := s.execute(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	run := storage.NewRun(res, opts, s.now())
	if err := s.store.Save(r.Context(), run); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/runs/"+run.ID)
	writeJSON(w, http.StatusCreated, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	writeJSON(w, http.StatusOK, listResponse{Runs: runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateRunID(id); err != nil {
		s.writeError(w, err)
		return
	}
	run, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateRunID(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// execute decodes the request and runs the pipeline with the request context,
// so a client disconnect cancels the aggregation.
func (s *Server) execute(w http.ResponseWriter, r *http.Request) (*pipeline.Result, pipeline.Options, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		return nil, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "empty request body")
	}

	var (
		opts  pipeline.Options
		input []byte
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		opts, input, err = decodeEnvelope(body)
	case "text/tab-separated-values":
		opts, err = optionsFromQuery(r.URL.Query(), table.FormatTSV)
		input = body
	case "", "text/csv", "text/plain":
		opts, err = optionsFromQuery(r.URL.Query(), table.FormatCSV)
		input = body
	default:
		err = errors.New(errors.ErrCodeUnsupported, "unsupported content type %q", mediaType)
	}
	if err != nil {
		return nil, pipeline.Options{}, err
	}

	res, err := s.runner.Execute(r.Context(), input, opts)
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	return res, opts, nil
}

func decodeEnvelope(body []byte) (pipeline.Options, []byte, error) {
	var req aggregateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return pipeline.Options{}, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
	}
	opts := pipeline.DefaultOptions()
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, &opts); err != nil {
			return pipeline.Options{}, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode options")
		}
	}
	if len(req.Table) == 0 || string(req.Table) == "null" {
		return pipeline.Options{}, nil, errors.New(errors.ErrCodeInvalidInput, "request has no table")
	}
	opts.Format = string(table.FormatJSON)
	return opts, req.Table, nil
}

// optionsFromQuery reads options for raw CSV and TSV bodies.
func optionsFromQuery(q url.Values, format table.Format) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	opts.Format = string(format)

	opts.LabelColumn = q.Get("label")
	opts.SizeColumn = q.Get("size")
	opts.CSV.IDColumn = q.Get("id_column")
	opts.CSV.SizeColumn = q.Get("row_size_column")
	opts.CSV.ColorColumn = q.Get("row_color_column")
	opts.CSV.MissingToken = q.Get("missing_token")
	for _, v := range q["term_column"] {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.CSV.TermColumns = append(opts.CSV.TermColumns, name)
			}
		}
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"row_id", &opts.UseRowID},
		{"size_property", &opts.UseSizeProperty},
		{"aggregate", &opts.Aggregate},
		{"terms", &opts.TermMode},
		{"ignore_tags", &opts.IgnoreTermTags},
		{"color", &opts.ExtractColor},
		{"refresh", &opts.Refresh},
	}
	for _, f := range flags {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "invalid %s %q", f.name, v)
		}
		*f.dst = b
	}

	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "invalid max %q", v)
		}
		opts.MaxCount = n
	}
	return opts, nil
}

func statusFor(code errors.Code) int {
	switch {
	case code.Invalid():
		return http.StatusBadRequest
	case code.Missing():
		return http.StatusNotFound
	case code == errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case code == errors.ErrCodeCancelled:
		return statusClientClosedRequest
	case code == errors.ErrCodeStorage, code == errors.ErrCodeNetwork:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: errors.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

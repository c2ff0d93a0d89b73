package main

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"github.com/spentlog/importer/pkg/common"
	"github.com/spentlog/importer/pkg/database"
	"github.com/spentlog/importer/pkg/importer"
)

const maxStatementSize = 16 << 20

type Handler struct {
	importer StatementImporter
}

func NewHandler(
	importerSvc StatementImporter,
) *Handler {
	return &Handler{
		importer: importerSvc,
	}
}

func (h *Handler) ServeHTTP(
	w http.ResponseWriter,
	r *http.Request,
) {
	if apiKey != r.URL.Query().Get("api_key") {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	request, err := h.buildRequest(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	result, err := h.importer.Import(r.Context(), *request)
	if err != nil {
		w.WriteHeader(h.statusFor(err))
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (h *Handler) buildRequest(r *http.Request) (*importer.Request, error) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		return nil, errors.New("user_id is required")
	}

	mode := importer.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = importer.ModePreview
	}
	if mode != importer.ModePreview && mode != importer.ModeCommit {
		return nil, errors.Newf("unknown mode %s", mode)
	}

	if parseErr := r.ParseMultipartForm(maxStatementSize); parseErr != nil {
		return nil, errors.Wrap(parseErr, "failed to parse form")
	}

	file, _, err := r.FormFile("statement")
	if err != nil {
		return nil, errors.Wrap(err, "statement file is required")
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &importer.Request{
		UserID: userID,
		Source: database.TransactionSource(mux.Vars(r)["provider"]),
		Mode:   mode,
		Data:   data,
	}, nil
}

func (h *Handler) statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrUnsupportedProvider):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnreadableFile), errors.Is(err, common.ErrHeaderNotFound):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

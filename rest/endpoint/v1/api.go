package endpoint

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/datastax/cassandra-datatables/config"
	m "github.com/datastax/cassandra-datatables/rest/models"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	inputValidator *validator.Validate
	trans          ut.Translator
)

func init() {
	inputValidator = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(inputValidator, trans)

	_ = inputValidator.RegisterTranslation("oneof", trans, func(ut ut.Translator) error {
		return ut.Add("Order.Dir", "{0} must be either asc or desc", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		translator, _ := ut.T("Order.Dir", fe.Field())
		return translator
	})
}

// GetTables returns the names of the registered tables
func (s *routeList) GetTables(w http.ResponseWriter, r *http.Request) {
	RespondJSONObjectWithCode(w, http.StatusOK, s.tables.Names())
}

// GetTable describes a single table
func (s *routeList) GetTable(w http.ResponseWriter, r *http.Request) {
	tableName := s.params(r, tableNameParam)

	table, err := s.tables.Table(tableName)
	if err != nil {
		s.respondWithError(w, "unable to describe table", tableName, err)
		return
	}

	columns := make([]string, 0)
	for _, column := range table.Columns() {
		columns = append(columns, column.Name)
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.Table{
		Name:    tableName,
		Rows:    table.Len(),
		Columns: columns,
	})
}

// GetColumns returns the columns of a table, as derived from its first record
func (s *routeList) GetColumns(w http.ResponseWriter, r *http.Request) {
	tableName := s.params(r, tableNameParam)

	table, err := s.tables.Table(tableName)
	if err != nil {
		s.respondWithError(w, "unable to describe table", tableName, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, table.Columns())
}

// DataTable serves a DataTables server-side request, GET with a query string
// or POST with a form or a JSON body
func (s *routeList) DataTable(w http.ResponseWriter, r *http.Request) {
	tableName := s.params(r, tableNameParam)

	engine, err := s.tables.Engine(tableName, config.EngineOptions(s.cfg)...)
	if err != nil {
		s.respondWithError(w, "unable to find table", tableName, err)
		return
	}

	params, err := readParams(r)
	if err != nil {
		s.respondWithError(w, "unable to read request", tableName, err)
		return
	}

	request, err := DecodeDataTableRequest(params)
	if err != nil {
		s.respondWithError(w, "invalid request", tableName, err)
		return
	}

	response, err := engine.Make(request)
	if err != nil {
		s.respondWithError(w, "unable to process request", tableName, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, response)
}

func (s *routeList) respondWithError(w http.ResponseWriter, msg string, tableName string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(msg, "table", tableName, "error", err)
		RespondWithError(w, errors.New(msg), code)
		return
	}

	s.logger.Debug(msg, "table", tableName, "error", err)
	RespondWithError(w, fmt.Errorf("%s: %s", msg, err), code)
}

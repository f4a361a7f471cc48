package endpoint

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/datastax/cassandra-datatables/datatables"
	e "github.com/datastax/cassandra-datatables/rest/errors"
	m "github.com/datastax/cassandra-datatables/rest/models"
)

// RespondJSONObjectWithCode writes the object and status header to the response. Important to note that if this is being
// used for an error case then an empty return will need to immediately follow the call to this function
func RespondJSONObjectWithCode(w http.ResponseWriter, code int, obj interface{}) {
	setCommonHeaders(w)
	var err error
	var jsonBytes []byte
	if obj != nil {
		jsonBytes, err = json.Marshal(obj)
	}
	writeJSONBytes(w, jsonBytes, err, code)
}

func writeJSONBytes(w http.ResponseWriter, jsonBytes []byte, err error, code int) {
	if err != nil {
		RespondWithError(w, errors.New("unable to marshal response"), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)
	if jsonBytes != nil {
		_, _ = w.Write(jsonBytes)
	}
}

func RespondWithError(w http.ResponseWriter, err error, code int) {
	requestError := m.ModelError{
		Description: err.Error(),
	}
	RespondJSONObjectWithCode(w, code, requestError)
}

// statusFor maps an error to the status code returned to the client
func statusFor(err error) int {
	switch err.(type) {
	case *e.NotFoundError:
		return http.StatusNotFound
	case *e.BadRequestError, *datatables.ColumnNotFoundError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func setCommonHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
}

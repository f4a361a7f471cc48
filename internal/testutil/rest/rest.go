package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"reflect"
	"regexp"
	"strings"

	"github.com/datastax/cassandra-datatables/internal/testutil"
	"github.com/datastax/cassandra-datatables/rest/models"
	"github.com/datastax/cassandra-datatables/types"
	"github.com/julienschmidt/httprouter"
	. "github.com/onsi/gomega"
)

const Prefix = "/rest"

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

func ExecuteGet(routes []types.Route, routeFormat string, responsePtr interface{}, values ...interface{}) int {
	code, _ := execute(http.MethodGet, routes, routeFormat, nil, "", "", responsePtr, values...)
	return code
}

// ExecuteGetWithQuery performs a GET request with the provided query string
func ExecuteGetWithQuery(
	routes []types.Route,
	routeFormat string,
	query url.Values,
	responsePtr interface{},
	values ...interface{},
) int {
	code, _ := execute(http.MethodGet, routes, routeFormat, query, "", "", responsePtr, values...)
	return code
}

// ExecutePost performs a POST request with a JSON body
func ExecutePost(
	routes []types.Route,
	routeFormat string,
	requestBody string,
	responsePtr interface{},
	values ...interface{},
) int {
	code, _ := execute(http.MethodPost, routes, routeFormat, nil, contentTypeJSON, requestBody, responsePtr, values...)
	return code
}

// ExecutePostForm performs a POST request with a url encoded form body
func ExecutePostForm(
	routes []types.Route,
	routeFormat string,
	form url.Values,
	responsePtr interface{},
	values ...interface{},
) int {
	code, _ := execute(http.MethodPost, routes, routeFormat, nil, contentTypeForm, form.Encode(), responsePtr, values...)
	return code
}

// ExpectGetBody performs a GET request and expects the exact JSON body, printing a diff otherwise
func ExpectGetBody(routes []types.Route, routeFormat string, query url.Values, expected string, values ...interface{}) {
	code, body := execute(http.MethodGet, routes, routeFormat, query, "", "", nil, values...)
	Expect(code).To(Equal(http.StatusOK))
	actual := strings.TrimSpace(body)
	Expect(actual).To(Equal(expected), testutil.Diff(expected, actual))
}

func execute(
	method string,
	routes []types.Route,
	routeFormat string,
	query url.Values,
	contentType string,
	requestBody string,
	responsePtr interface{},
	values ...interface{},
) (int, string) {
	rv := reflect.ValueOf(responsePtr)
	if responsePtr != nil && rv.Kind() != reflect.Ptr {
		panic("Provided value should be a pointer or nil")
	}

	targetPath := path.Join(Prefix, fmt.Sprintf(routeFormat, values...))
	if len(query) > 0 {
		targetPath += "?" + query.Encode()
	}

	var body io.Reader = nil
	if requestBody != "" {
		body = bytes.NewBuffer([]byte(requestBody))
	}

	r, _ := http.NewRequest(method, targetPath, body)
	if body != nil {
		r.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	route := lookupRoute(routes, method, routeFormat)

	// Use default router for params to be populated
	router := httprouter.New()
	router.Handler(method, route.Pattern, route.Handler)
	router.ServeHTTP(w, r)

	bodyString := w.Body.String()
	if w.Code < http.StatusOK || w.Code > http.StatusIMUsed {
		// Not in the 2xx range
		if responsePtr == nil {
			return w.Code, bodyString
		}
		_, ok := responsePtr.(*models.ModelError)
		if !ok {
			panic(fmt.Sprintf("unexpected http error %d: %s", w.Code, bodyString))
		}
	}

	if responsePtr != nil && w.Code != http.StatusNoContent {
		err := json.NewDecoder(bytes.NewBufferString(bodyString)).Decode(responsePtr)
		Expect(err).ToNot(HaveOccurred(),
			fmt.Sprintf("Error decoding response with code %d and body: %s", w.Code, bodyString))
	}

	return w.Code, bodyString
}

func lookupRoute(routes []types.Route, method, format string) types.Route {
	// Word tokens for parameters
	regexStr := strings.Replace(format, `%s`, `[\w:{}]+`, -1)
	// End of the string
	regexStr += `$`

	re := regexp.MustCompile(regexStr)
	for _, route := range routes {
		if re.MatchString(route.Pattern) && route.Method == method {
			return route
		}
	}

	panic("Route not found")
}

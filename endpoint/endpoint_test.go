package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"

	"github.com/datastax/cassandra-datatables/datatables"
	"github.com/datastax/cassandra-datatables/db"
	"github.com/datastax/cassandra-datatables/graphql"
	"github.com/datastax/cassandra-datatables/internal/testutil"
	. "github.com/datastax/cassandra-datatables/internal/testutil/rest"
	v1 "github.com/datastax/cassandra-datatables/rest/endpoint/v1"
	"github.com/datastax/cassandra-datatables/source"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
)

const citiesJSON = `[
  {"city": "Paris", "country": "France"},
  {"city": "Oslo", "country": "Norway"},
  {"city": "Lyon", "country": "France"}
]`

func newBooksDb() (*db.Db, *db.SessionMock) {
	sessionMock := db.NewSessionMock()
	sessionMock.
		On("ExecuteIter", `SELECT * FROM "store"."books"`, mock.Anything, mock.Anything).
		Return(db.NewResultMock([]string{"title", "pages"}, []map[string]interface{}{
			{"title": "Dune", "pages": 412},
			{"title": "Emma", "pages": 474},
		}, nil), nil)
	return db.NewDbWithSession(sessionMock), sessionMock
}

var _ = Describe("DataTablesEndpointConfig", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "datatables")
		Expect(err).ToNot(HaveOccurred())
		Expect(ioutil.WriteFile(filepath.Join(dir, "cities.json"), []byte(citiesJSON), 0644)).To(Succeed())
	})

	AfterEach(func() {
		_ = os.RemoveAll(dir)
	})

	It("Should use defaults", func() {
		cfg := NewEndpointConfigWithLogger(testutil.TestLogger(), "127.0.0.1")
		Expect(cfg.CaseInsensitive()).To(BeTrue())
		Expect(cfg.Debug()).To(BeFalse())
		Expect(cfg.DefaultPageLength()).To(Equal(datatables.DefaultPageLength))
		Expect(cfg.RefreshInterval()).To(Equal(DefaultRefreshInterval))
		Expect(cfg.Naming()).ToNot(BeNil())
	})

	It("Should require hosts for cql tables", func() {
		cfg := NewEndpointConfigWithLogger(testutil.TestLogger()).WithCqlTables([]string{"store.books"})
		_, err := cfg.NewEndpoint(context.Background())
		Expect(err).To(MatchError("cql tables require at least one host"))
	})

	It("Should fail when a table can not be loaded", func() {
		cfg := NewEndpointConfigWithLogger(testutil.TestLogger()).
			WithFiles([]string{"missing=" + filepath.Join(dir, "missing.json")})
		_, err := cfg.NewEndpoint(context.Background())
		Expect(err).To(HaveOccurred())

		cfg = NewEndpointConfigWithLogger(testutil.TestLogger()).WithFiles([]string{"name="})
		_, err = cfg.NewEndpoint(context.Background())
		Expect(err).To(HaveOccurred())
	})

	It("Should fail on invalid cql table names", func() {
		dbClient, _ := newBooksDb()
		cfg := NewEndpointConfigWithLogger(testutil.TestLogger()).WithCqlTables([]string{"books"})
		_, err := cfg.newEndpointWithDb(context.Background(), dbClient)
		Expect(err).To(MatchError("table 'books' should be in the form keyspace.table"))
	})

	Context("With file, cql and custom tables", func() {
		var e *DataTablesEndpoint

		BeforeEach(func() {
			dbClient, _ := newBooksDb()
			cfg := NewEndpointConfigWithLogger(testutil.TestLogger()).
				WithFiles([]string{filepath.Join(dir, "cities.json")}).
				WithCqlTables([]string{"store.books"}).
				WithTable("numbers", source.NewStaticSource(
					datatables.NewRow().Set("n", 1),
					datatables.NewRow().Set("n", 2),
				), datatables.WithObjectRows(false)).
				WithDefaultPageLength(2)

			var err error
			e, err = cfg.newEndpointWithDb(context.Background(), dbClient)
			Expect(err).ToNot(HaveOccurred())
		})

		AfterEach(func() {
			e.Close()
		})

		It("Should serve every table", func() {
			Expect(e.Tables()).To(Equal([]string{"cities", "numbers", "store.books"}))
		})

		It("Should serve the REST routes", func() {
			routes := e.RoutesRest(Prefix)

			ExpectGetBody(routes, v1.DataTablePathFormat,
				url.Values{"draw": {"1"}, "search[value]": {"france"}, "columns[0][data]": {"city"},
					"columns[1][data]": {"country"}, "columns[1][searchable]": {"true"}},
				`{"draw":1,"recordsTotal":3,"recordsFiltered":2,"data":[{"city":"Paris","country":"France"},`+
					`{"city":"Lyon","country":"France"}]}`,
				"cities")

			ExpectGetBody(routes, v1.DataTablePathFormat,
				url.Values{"order[0][column]": {"1"}, "order[0][dir]": {"desc"},
					"columns[0][data]": {"title"}, "columns[1][data]": {"pages"}, "columns[1][orderable]": {"true"}},
				`{"draw":0,"recordsTotal":2,"recordsFiltered":2,"data":[{"title":"Emma","pages":474},`+
					`{"title":"Dune","pages":412}]}`,
				"store.books")

			ExpectGetBody(routes, v1.DataTablePathFormat, nil,
				`{"draw":0,"recordsTotal":2,"recordsFiltered":2,"data":[[1],[2]]}`, "numbers")
		})

		It("Should serve the GraphQL routes", func() {
			routes, err := e.RoutesGraphQL("/graphql")
			Expect(err).ToNot(HaveOccurred())

			body, err := json.Marshal(graphql.RequestBody{
				Query: `{ tables storeBooks(length: 1) { recordsTotal data } }`,
			})
			Expect(err).ToNot(HaveOccurred())

			w := httptest.NewRecorder()
			routes[1].Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBuffer(body)))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"data": {
				"tables": ["cities", "numbers", "store.books"],
				"storeBooks": {"recordsTotal": 2, "data": [{"title": "Dune", "pages": 412}]}
			}}`))
		})

		It("Should add tables", func() {
			Expect(e.AddTable(context.Background(), "extra", source.NewStaticSource())).To(Succeed())
			Expect(e.Tables()).To(ContainElement("extra"))
			Expect(e.AddTable(context.Background(), "extra", source.NewStaticSource())).ToNot(Succeed())
		})
	})
})

var _ = Describe("NewEndpoint()", func() {
	It("Should not contact the cluster without cql tables", func() {
		cfg := NewEndpointConfigWithLogger(testutil.TestLogger(), "127.0.0.1").
			WithTable("empty", source.NewStaticSource())
		e, err := cfg.NewEndpoint(context.Background())
		Expect(err).ToNot(HaveOccurred())
		defer e.Close()
		Expect(e.Tables()).To(Equal([]string{"empty"}))
	})
})

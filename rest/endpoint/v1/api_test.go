package endpoint_test

import (
	"context"
	"net/http"
	"net/url"

	"github.com/datastax/cassandra-datatables/config"
	"github.com/datastax/cassandra-datatables/datatables"
	"github.com/datastax/cassandra-datatables/internal/testutil"
	. "github.com/datastax/cassandra-datatables/internal/testutil/rest"
	. "github.com/datastax/cassandra-datatables/rest/endpoint/v1"
	"github.com/datastax/cassandra-datatables/rest/models"
	"github.com/datastax/cassandra-datatables/source"
	"github.com/datastax/cassandra-datatables/types"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func people() []datatables.Record {
	return []datatables.Record{
		datatables.NewRow().Set("id", 1).Set("name", "Alice").Set("city", "Paris"),
		datatables.NewRow().Set("id", 2).Set("name", "bob").Set("city", "Oslo"),
		datatables.NewRow().Set("id", 3).Set("name", "Carol").Set("city", "Paris"),
	}
}

func dataTableQuery(extra string) url.Values {
	query, err := url.ParseQuery("columns[0][data]=id&columns[0][searchable]=true&columns[0][orderable]=true" +
		"&columns[1][data]=name&columns[1][searchable]=true&columns[1][orderable]=true" +
		"&columns[2][data]=city&columns[2][searchable]=true&columns[2][orderable]=true" + extra)
	Expect(err).ToNot(HaveOccurred())
	return query
}

var _ = Describe("Routes()", func() {
	var (
		registry *source.Registry
		routes   []types.Route
	)

	BeforeEach(func() {
		registry = source.NewRegistry(testutil.TestLogger())
		Expect(registry.Add(context.Background(), "people", source.NewStaticSource(people()...), 0)).To(Succeed())
		Expect(registry.Add(context.Background(), "empty", source.NewStaticSource(), 0)).To(Succeed())
		routes = Routes(Prefix, config.NewConfigMock().Default(), registry)
	})

	AfterEach(func() {
		registry.Close()
	})

	It("Should list the tables", func() {
		var names []string
		Expect(ExecuteGet(routes, TablesPathFormat, &names)).To(Equal(http.StatusOK))
		Expect(names).To(Equal([]string{"empty", "people"}))
	})

	It("Should describe a table", func() {
		var table models.Table
		Expect(ExecuteGet(routes, TableSinglePathFormat, &table, "people")).To(Equal(http.StatusOK))
		Expect(table).To(Equal(models.Table{Name: "people", Rows: 3, Columns: []string{"id", "name", "city"}}))
	})

	It("Should return the columns", func() {
		var columns []datatables.ColumnSpec
		Expect(ExecuteGet(routes, ColumnsPathFormat, &columns, "people")).To(Equal(http.StatusOK))
		Expect(columns).To(HaveLen(3))
		Expect(columns[2]).To(Equal(datatables.ColumnSpec{Index: 2, Name: "city"}))
	})

	It("Should return not found for unknown tables", func() {
		var modelError models.ModelError
		Expect(ExecuteGet(routes, TableSinglePathFormat, &modelError, "nope")).To(Equal(http.StatusNotFound))
		Expect(modelError.Description).To(Equal("unable to describe table: table 'nope' not found"))

		Expect(ExecuteGetWithQuery(routes, DataTablePathFormat, dataTableQuery(""), &modelError, "nope")).
			To(Equal(http.StatusNotFound))
	})

	Context("DataTable()", func() {
		It("Should process a query string request", func() {
			ExpectGetBody(routes, DataTablePathFormat,
				dataTableQuery("&draw=7&start=0&length=10&search[value]=o&order[0][column]=1&order[0][dir]=asc"),
				`{"draw":7,"recordsTotal":3,"recordsFiltered":2,"data":[{"id":2,"name":"bob","city":"Oslo"},`+
					`{"id":3,"name":"Carol","city":"Paris"}]}`,
				"people")
		})

		It("Should process a form request", func() {
			var response datatables.Response
			form := dataTableQuery("&draw=2&start=1&length=1&order[0][column]=0&order[0][dir]=desc")
			Expect(ExecutePostForm(routes, DataTablePathFormat, form, &response, "people")).To(Equal(http.StatusOK))
			Expect(response.Draw).To(Equal(2))
			Expect(response.RecordsTotal).To(Equal(3))
			Expect(response.RecordsFiltered).To(Equal(3))
			Expect(response.Data).To(HaveLen(1))
			Expect(response.Data[0]).To(HaveKeyWithValue("name", "bob"))
		})

		It("Should process a JSON request", func() {
			var response datatables.Response
			body := `{
				"draw": 4, "start": 0, "length": -1,
				"search": {"value": "paris"},
				"columns": [
					{"data": "id", "searchable": true, "orderable": true},
					{"data": "name", "searchable": true, "orderable": true},
					{"data": "city", "searchable": true, "orderable": true, "search": {"value": "par"}}
				]
			}`
			Expect(ExecutePost(routes, DataTablePathFormat, body, &response, "people")).To(Equal(http.StatusOK))
			Expect(response.Draw).To(Equal(4))
			Expect(response.RecordsFiltered).To(Equal(2))
			Expect(response.Data).To(HaveLen(2))
		})

		It("Should serve empty tables", func() {
			ExpectGetBody(routes, DataTablePathFormat, url.Values{"draw": {"1"}},
				`{"draw":1,"recordsTotal":0,"recordsFiltered":0,"data":[]}`, "empty")
		})

		It("Should reject invalid requests", func() {
			var modelError models.ModelError
			query := dataTableQuery("&order[0][column]=0&order[0][dir]=sideways")
			Expect(ExecuteGetWithQuery(routes, DataTablePathFormat, query, &modelError, "people")).
				To(Equal(http.StatusBadRequest))
			Expect(modelError.Description).To(Equal("invalid request: Dir must be either asc or desc"))

			Expect(ExecutePost(routes, DataTablePathFormat, "{not json", &modelError, "people")).
				To(Equal(http.StatusBadRequest))
		})

		It("Should reject ordering by a column the table does not have", func() {
			var modelError models.ModelError
			query := dataTableQuery("&columns[3][data]=email&columns[3][orderable]=true&order[0][column]=3")
			Expect(ExecuteGetWithQuery(routes, DataTablePathFormat, query, &modelError, "people")).
				To(Equal(http.StatusBadRequest))
			Expect(modelError.Description).To(Equal("unable to process request: column with index 3 not found"))
		})
	})

	Context("With debug enabled", func() {
		BeforeEach(func() {
			cfg := config.NewConfigMock()
			cfg.On("Debug").Return(true)
			routes = Routes(Prefix, cfg.Default(), registry)
		})

		It("Should echo the request parameters", func() {
			var response datatables.Response
			query := url.Values{"draw": {"5"}, "search[value]": {"x"}}
			Expect(ExecuteGetWithQuery(routes, DataTablePathFormat, query, &response, "people")).To(Equal(http.StatusOK))
			Expect(response.Input).To(Equal(map[string]interface{}{
				"draw":   "5",
				"search": map[string]interface{}{"value": "x"},
			}))
		})
	})
})

package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	log2 "log"
	"net/http"
	"os"
	"strings"

	"github.com/datastax/cassandra-datatables/endpoint"
	"github.com/datastax/cassandra-datatables/graphql"
	"github.com/datastax/cassandra-datatables/log"
	"github.com/datastax/cassandra-datatables/types"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultRESTPath = "/rest"
const defaultGraphQLPath = "/graphql"
const defaultGraphQLPlaygroundPath = "/graphql-playground"

// Environment variables prefixed with "DATATABLES_" can override settings e.g. "DATATABLES_FILES"
const envVarPrefix = "datatables"

var cfgFile string
var logger log.Logger

var serverCmd = &cobra.Command{
	Use:   os.Args[0] + " [--files NAME=PATH] [--hosts HOSTS --tables KEYSPACE.TABLE] [OPTIONS]",
	Short: "DataTables server-side processing endpoints over in-memory tables",
	Args: func(cmd *cobra.Command, args []string) error {
		files := getStringSlice("files")
		tables := getStringSlice("tables")
		if len(files) == 0 && len(tables) == 0 {
			return errors.New("at least one file or table is required")
		}
		if len(tables) > 0 && len(getStringSlice("hosts")) == 0 {
			return errors.New("hosts are required to serve cassandra tables")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		endpoint := createEndpoint()
		defer endpoint.Close()

		router := createRouter()
		addRESTRoutes(router, endpoint)
		if viper.GetBool("graphql") {
			addGraphQLRoutes(router, endpoint)
		}

		listenAndServe(router, viper.GetInt("port"))
	},
}

// Execute starts the endpoints
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := serverCmd.PersistentFlags()

	// Table flags
	flags.StringVarP(&cfgFile, "config", "c", "", "config file")
	flags.StringSliceP("files", "f", nil, "JSON or YAML files served as tables, in the form name=path")
	flags.StringSlice("tables", nil, "cassandra tables served, in the form keyspace.table")
	flags.StringSliceP("hosts", "t", nil, "hosts for connecting to the database")
	flags.StringP("username", "u", "", "connect with database username")
	flags.StringP("password", "p", "", "database user's password")
	flags.Duration("refresh-interval", endpoint.DefaultRefreshInterval, "interval used to reload the tables, 0 to load them once")

	// Processing flags
	flags.Bool("case-insensitive", true, "search and order ignoring case")
	flags.Bool("debug", false, "echo the request parameters in the responses")
	flags.Int("default-page-length", 10, "page length used when the request has none")

	// Server flags
	flags.Int("port", 8080, "endpoint port")
	flags.String("path", defaultRESTPath, "REST endpoint path")
	flags.Bool("request-logging", false, "enable request logging")
	flags.String("access-control-allow-origin", "", "Access-Control-Allow-Origin header value")

	// GraphQL specific flags
	flags.Bool("graphql", true, "start the GraphQL endpoint")
	flags.String("graphql-path", defaultGraphQLPath, "GraphQL endpoint path")
	flags.Bool("graphql-playground", true, "expose a GraphQL playground route")
	flags.String("graphql-playground-path", defaultGraphQLPlaygroundPath, "path for the GraphQL playground static file")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			_ = viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := serverCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createEndpoint() *endpoint.DataTablesEndpoint {
	cfg := endpoint.NewEndpointConfigWithLogger(logger, getStringSlice("hosts")...)

	cfg.
		WithDbUsername(viper.GetString("username")).
		WithDbPassword(viper.GetString("password")).
		WithFiles(getStringSlice("files")).
		WithCqlTables(getStringSlice("tables")).
		WithRefreshInterval(viper.GetDuration("refresh-interval")).
		WithCaseInsensitive(viper.GetBool("case-insensitive")).
		WithDebug(viper.GetBool("debug")).
		WithDefaultPageLength(viper.GetInt("default-page-length"))

	endpoint, err := cfg.NewEndpoint(context.Background())
	if err != nil {
		logger.Fatal("unable create new endpoint",
			"error", err)
	}

	logger.Info("tables loaded", "tables", endpoint.Tables())
	return endpoint
}

func addRESTRoutes(router *httprouter.Router, endpoint *endpoint.DataTablesEndpoint) {
	addRoutes(router, endpoint.RoutesRest(viper.GetString("path")))
}

func addGraphQLRoutes(router *httprouter.Router, endpoint *endpoint.DataTablesEndpoint) {
	rootPath := viper.GetString("graphql-path")
	routes, err := endpoint.RoutesGraphQL(rootPath)
	if err != nil {
		logger.Fatal("unable to generate graphql routes",
			"error", err)
	}

	if viper.GetBool("graphql-playground") {
		playgroundPath := viper.GetString("graphql-playground-path")
		hostAndPort := fmt.Sprintf("http://localhost:%d", viper.GetInt("port"))
		logger.Info("get started by visiting the GraphQL playground",
			"url", hostAndPort+playgroundPath)
		routes = append(routes, graphql.PlaygroundRoute(playgroundPath, hostAndPort+rootPath))
	}

	addRoutes(router, routes)
}

func addRoutes(router *httprouter.Router, routes []types.Route) {
	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
}

func maybeAddRequestLogging(handler http.Handler) http.Handler {
	if viper.GetBool("request-logging") {
		handler = log.NewLoggingHandler(handler, logger)
	}
	return handler
}

func maybeAddCORS(handler http.Handler) http.Handler {
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", value)
			handler.ServeHTTP(w, r)
		})
	}
	return handler
}

func initialize() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			logger.Info("using config file",
				"file", viper.ConfigFileUsed())
		}
	}
}

func createRouter() *httprouter.Router {
	router := httprouter.New()
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Access-Control-Request-Method") != "" {
				header := w.Header()
				header.Set("Access-Control-Allow-Method", r.Header.Get("Access-Control-Request-Method"))
				header.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
				header.Set("Access-Control-Allow-Origin", value)
			}

			w.WriteHeader(http.StatusNoContent)
		})
	}
	return router
}

func listenAndServe(handler http.Handler, port int) {
	logger.Info("server listening",
		"port", port)
	handler = maybeAddCORS(maybeAddRequestLogging(handler))
	err := http.ListenAndServe(fmt.Sprintf(":%d", port), handler)
	if err != nil {
		logger.Fatal("unable to start server",
			"port", port,
			"error", err)
	}
}

func getStringSlice(key string) []string {
	value := viper.GetStringSlice(key)
	slice, err := toStringSlice(value)
	if err != nil {
		logger.Fatal("invalid string slice value for setting",
			"error", err,
			"key", key,
			"value", value)
	}
	return slice
}

func toStringSlice(slice []string) ([]string, error) {
	result := make([]string, 0)
	for _, entry := range slice {
		stringReader := strings.NewReader(entry)
		csvReader := csv.NewReader(stringReader)
		split, err := csvReader.Read()
		if err != nil {
			return nil, err
		}
		for _, part := range split {
			if part != "" { // Don't add empty values
				result = append(result, part)
			}
		}
	}
	return result, nil
}

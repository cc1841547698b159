package main

import (
	"context"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/releasetrain/releasetrain-api/pkg/api"
	"github.com/releasetrain/releasetrain-api/pkg/clients/buildcli"
	"github.com/releasetrain/releasetrain-api/pkg/clients/database"
	"github.com/releasetrain/releasetrain-api/pkg/clients/githubapi"
	"github.com/releasetrain/releasetrain-api/pkg/clients/pypiapi"
	"github.com/releasetrain/releasetrain-api/pkg/clients/registryapi"
	"github.com/releasetrain/releasetrain-api/pkg/clients/slackapi"
	"github.com/releasetrain/releasetrain-api/pkg/services/release"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

var (
	appgroup  string
	app       string
	version   string
	branch    string
	revision  string
	buildDate string
	goVersion = runtime.Version()
)

var (
	// flags
	prometheusMetricsAddress = kingpin.Flag("metrics-listen-address", "The address to listen on for Prometheus metrics requests.").Default(":9001").String()
	prometheusMetricsPath    = kingpin.Flag("metrics-path", "The path to listen for Prometheus metrics requests.").Default("/metrics").String()

	apiAddress = kingpin.Flag("api-listen-address", "The address to listen on for api HTTP requests.").Default(":5000").String()

	configFilePath = kingpin.Flag("config-file-path", "The path to the config yaml file.").Envar("CONFIG_FILE_PATH").Default("/configs/config.yaml").String()

	packageIndexToken = kingpin.Flag("package-index-token", "The token to authenticate package uploads with.").Envar("PACKAGE_INDEX_TOKEN").String()
	githubToken       = kingpin.Flag("github-token", "The token to create release records with.").Envar("GITHUB_TOKEN").String()
	registryToken     = kingpin.Flag("registry-token", "The token to push container images with.").Envar("REGISTRY_TOKEN").String()
	slackBotToken     = kingpin.Flag("slack-bot-token", "The bot token to post release announcements with.").Envar("SLACK_BOT_TOKEN").String()

	openaiAPIKey    = kingpin.Flag("openai-api-key", "Passed through to the test suite environment.").Envar("OPENAI_API_KEY").String()
	anthropicAPIKey = kingpin.Flag("anthropic-api-key", "Passed through to the test suite environment.").Envar("ANTHROPIC_API_KEY").String()

	// prometheusInboundEventTotals is the prometheus timeline serie that keeps track of inbound events
	prometheusInboundEventTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "releasetrain_api_inbound_event_totals",
			Help: "Total of inbound events.",
		},
		[]string{"event", "source"},
	)

	// prometheusPipelineRunTotals is the prometheus timeline serie that keeps track of started pipeline runs
	prometheusPipelineRunTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "releasetrain_api_pipeline_run_totals",
			Help: "Total of started release pipeline runs.",
		},
		[]string{"source"},
	)
)

func init() {
	// Metrics have to be registered to be exposed:
	prometheus.MustRegister(prometheusInboundEventTotals)
	prometheus.MustRegister(prometheusPipelineRunTotals)
}

func main() {

	// parse command line parameters
	kingpin.Parse()

	// configure json logging
	initLogging()

	// define channels and waitgroup to gracefully shutdown the application
	sigs := make(chan os.Signal, 1)
	stop := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	wg := &sync.WaitGroup{}

	closer := initJaeger(app)
	defer closer.Close()

	ctx := context.Background()

	configReader := api.NewConfigReader("RT_")
	config, err := configReader.ReadConfigFromFile(ctx, *configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msgf("Reading configuration from %v failed", *configFilePath)
	}
	applySecretOverrides(config)
	if err = config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Validating configuration failed")
	}

	// start prometheus
	go startPrometheus()

	releaseService := createReleaseService(ctx, config)

	// handle api requests
	srv := handleRequests(config, releaseService)

	// wait for graceful shutdown to finish
	<-sigs
	log.Debug().Msg("Shutting down...")

	// shut down gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Graceful server shutdown failed")
	}

	log.Debug().Msg("Stopping goroutines...")
	close(stop)

	log.Debug().Msg("Awaiting waitgroup...")
	wg.Wait()

	log.Info().Msg("Server gracefully stopped")
}

// applySecretOverrides copies secrets passed as flags or envvars over the
// values from the config file
func applySecretOverrides(config *api.APIConfig) {
	if *packageIndexToken != "" {
		config.Integrations.PackageIndex.Token = *packageIndexToken
	}
	if *githubToken != "" {
		config.Integrations.Github.Token = *githubToken
	}
	if *registryToken != "" {
		config.Integrations.Registry.Token = *registryToken
	}
	if *slackBotToken != "" {
		config.Integrations.Slack.BotToken = *slackBotToken
	}
}

func createReleaseService(ctx context.Context, config *api.APIConfig) release.Service {

	pypiapiClient := pypiapi.NewTracingClient(pypiapi.NewLoggingClient(pypiapi.NewMetricsClient(pypiapi.NewClient(config),
		api.NewRequestCounter("pypiapi_client"),
		api.NewRequestHistogram("pypiapi_client"))))

	githubapiClient := githubapi.NewTracingClient(githubapi.NewLoggingClient(githubapi.NewMetricsClient(githubapi.NewClient(config),
		api.NewRequestCounter("githubapi_client"),
		api.NewRequestHistogram("githubapi_client"))))

	registryapiClient := registryapi.NewTracingClient(registryapi.NewLoggingClient(registryapi.NewMetricsClient(registryapi.NewClient(config),
		api.NewRequestCounter("registryapi_client"),
		api.NewRequestHistogram("registryapi_client"))))

	slackapiClient := slackapi.NewTracingClient(slackapi.NewLoggingClient(slackapi.NewMetricsClient(slackapi.NewClient(config),
		api.NewRequestCounter("slackapi_client"),
		api.NewRequestHistogram("slackapi_client"))))

	buildcliClient := buildcli.NewTracingClient(buildcli.NewLoggingClient(buildcli.NewMetricsClient(buildcli.NewClient(config),
		api.NewRequestCounter("buildcli_client"),
		api.NewRequestHistogram("buildcli_client"))))

	databaseClient := database.NewTracingClient(database.NewLoggingClient(database.NewMetricsClient(database.NewClient(config),
		api.NewRequestCounter("database_client"),
		api.NewRequestHistogram("database_client"))))

	if err := databaseClient.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed connecting to postgres server")
	}

	testEnv := map[string]string{}
	if *openaiAPIKey != "" {
		testEnv["OPENAI_API_KEY"] = *openaiAPIKey
	}
	if *anthropicAPIKey != "" {
		testEnv["ANTHROPIC_API_KEY"] = *anthropicAPIKey
	}

	return release.NewTracingService(release.NewLoggingService(release.NewMetricsService(
		release.NewService(config, pypiapiClient, githubapiClient, registryapiClient, slackapiClient, buildcliClient, databaseClient, testEnv),
		api.NewRequestCounter("release_service"),
		api.NewRequestHistogram("release_service"))))
}

func startPrometheus() {
	log.Debug().
		Str("port", *prometheusMetricsAddress).
		Str("path", *prometheusMetricsPath).
		Msg("Serving Prometheus metrics...")

	http.Handle(*prometheusMetricsPath, promhttp.Handler())

	if err := http.ListenAndServe(*prometheusMetricsAddress, nil); err != nil {
		log.Fatal().Err(err).Msg("Starting Prometheus listener failed")
	}
}

func initLogging() {

	// log as severity for stackdriver logging to recognize the level
	zerolog.LevelFieldName = "severity"

	// set some default fields added to all logs
	log.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("app", app).
		Str("version", version).
		Logger()

	// use zerolog for any logs sent via standard log library
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	// log startup message
	log.Info().
		Str("appgroup", appgroup).
		Str("branch", branch).
		Str("revision", revision).
		Str("buildDate", buildDate).
		Str("goVersion", goVersion).
		Msgf("Starting %v version %v...", app, version)
}

// initJaeger returns an instance of Jaeger Tracer that can be configured with
// environment variables
// https://github.com/jaegertracing/jaeger-client-go#environment-variables
func initJaeger(service string) io.Closer {

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger config from environment variables failed")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = service
	}

	closer, err := cfg.InitGlobalTracer(cfg.ServiceName, jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger tracer failed")
	}

	return closer
}

func createRouter() *gin.Engine {

	// run gin in release mode and other defaults
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = log.Logger
	gin.DisableConsoleColor()

	// creates a router without any middleware by default
	router := gin.New()

	// logging middleware
	router.Use(api.RequestLoggingMiddleware())

	// recovery middleware recovers from any panics and writes a 500 if there was one
	router.Use(gin.Recovery())

	// opentracing middleware
	router.Use(api.OpenTracingMiddleware())

	// gzip middleware
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// liveness and readiness
	router.GET("/liveness", func(c *gin.Context) {
		c.String(http.StatusOK, "I'm alive!")
	})
	router.GET("/readiness", func(c *gin.Context) {
		c.String(http.StatusOK, "I'm ready!")
	})

	return router
}

func handleRequests(config *api.APIConfig, releaseService release.Service) *http.Server {

	// listen to http calls
	log.Debug().
		Str("port", *apiAddress).
		Msg("Serving api calls...")

	// create and init router
	router := createRouter()

	releaseHandler := release.NewHandler(config, releaseService)
	router.POST("/api/integrations/github/events", func(c *gin.Context) {
		prometheusInboundEventTotals.With(prometheus.Labels{"event": c.GetHeader("X-Github-Event"), "source": "github"}).Inc()
		releaseHandler.HandleGithubEvent(c)
	})
	router.POST("/api/releases", func(c *gin.Context) {
		prometheusPipelineRunTotals.With(prometheus.Labels{"source": "manual"}).Inc()
		releaseHandler.CreateRelease(c)
	})
	router.GET("/api/releases", releaseHandler.GetReleases)
	router.GET("/api/releases/:version", releaseHandler.GetRelease)

	// instantiate servers instead of using router.Run in order to handle graceful shutdown
	srv := &http.Server{
		Addr:           *apiAddress,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Starting gin router failed")
		}
	}()

	return srv
}

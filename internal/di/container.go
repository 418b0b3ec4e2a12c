package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-atlas/internal/countries"
	"github.com/goliatone/go-atlas/internal/countrycontent"
	"github.com/goliatone/go-atlas/internal/functions"
	"github.com/goliatone/go-atlas/internal/i18n"
	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/internal/markdown"
	"github.com/goliatone/go-atlas/internal/premium"
	"github.com/goliatone/go-atlas/internal/query"
	"github.com/goliatone/go-atlas/internal/runtimeconfig"
	"github.com/goliatone/go-atlas/internal/subscriptions"
	"github.com/goliatone/go-atlas/internal/trips"
	"github.com/goliatone/go-atlas/pkg/activity"
	"github.com/goliatone/go-atlas/pkg/activity/usersink"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	bunDB   *bun.DB
	ownsDB  bool
	closeMu sync.Mutex

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	queryClient    *query.Client
	httpClient     *http.Client

	countryRepo countries.CountryRepository
	cityRepo    countries.CityRepository
	sheetRepo   countries.SheetRepository
	contentRepo countrycontent.Repository
	tripRepo    trips.Repository
	profiles    subscriptions.ProfileSource

	activitySink  interfaces.ActivitySink
	activityHooks []activity.Hook
	emitter       *activity.Emitter

	registry *functions.Registry
	invoker  interfaces.FunctionInvoker

	countrySvc countries.Service
	contentSvc countrycontent.Service
	tripSvc    trips.Service
	renderer   *markdown.Renderer
	importer   *markdown.Importer

	translatorOnce sync.Once
	translator     *i18n.Translator
	translatorErr  error
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithBunDB supplies an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider selected from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithQueryClient shares an existing query client.
func WithQueryClient(client *query.Client) Option {
	return func(c *Container) {
		c.queryClient = client
	}
}

// WithFunctionInvoker overrides the invoker used by subscription trackers.
func WithFunctionInvoker(invoker interfaces.FunctionInvoker) Option {
	return func(c *Container) {
		c.invoker = invoker
	}
}

// WithHTTPClient sets the client used by the remote function invoker.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		c.httpClient = client
	}
}

// WithActivitySink routes trip activity into a go-users sink.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithActivityHooks appends activity hooks.
func WithActivityHooks(hooks ...activity.Hook) Option {
	return func(c *Container) {
		c.activityHooks = append(c.activityHooks, hooks...)
	}
}

// WithProfileSource overrides where subscription checks read profiles.
func WithProfileSource(source subscriptions.ProfileSource) Option {
	return func(c *Container) {
		c.profiles = source
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureQueryClient()
	c.configureActivity()
	if err := c.configureFunctions(); err != nil {
		c.Close()
		return nil, err
	}
	c.configureServices()
	return c, nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil {
		return nil
	}
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	if provider == "" || provider == storageProviderMemory {
		return nil
	}
	if provider != storageProviderBun {
		return fmt.Errorf("%w: provider %s", runtimeconfig.ErrStorageDriverUnknown, provider)
	}
	db, err := openBunDB(c.Config.Storage)
	if err != nil {
		return err
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if ttl := c.Config.Cache.RepositoryTTL; ttl > 0 {
			cfg.TTL = ttl
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			logging.ModuleLogger(c.loggerProvider, "di").Warn("di.cache.unavailable", "error", err)
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		c.countryRepo = countries.NewMemoryCountryRepository()
		c.cityRepo = countries.NewMemoryCityRepository()
		c.sheetRepo = countries.NewMemorySheetRepository()
		c.contentRepo = countrycontent.NewMemoryRepository()
		c.tripRepo = trips.NewMemoryRepository()
		if c.profiles == nil {
			c.profiles = subscriptions.NewMemoryProfileSource()
		}
		return
	}

	c.countryRepo = countries.NewBunCountryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.cityRepo = countries.NewBunCityRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.sheetRepo = countries.NewBunSheetRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.contentRepo = countrycontent.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.tripRepo = trips.NewBunRepository(c.bunDB)
	if c.profiles == nil {
		c.profiles = subscriptions.NewBunProfileSource(c.bunDB)
	}
}

func (c *Container) configureQueryClient() {
	if c.queryClient != nil {
		return
	}
	c.queryClient = query.NewClient(
		query.WithFreshFor(c.Config.Cache.FreshFor),
		query.WithEvictAfter(c.Config.Cache.EvictAfter),
		query.WithDisabled(!c.Config.Cache.Enabled),
		query.WithLogger(logging.QueryLogger(c.loggerProvider)),
	)
}

func (c *Container) configureActivity() {
	hooks := append([]activity.Hook(nil), c.activityHooks...)
	if c.activitySink != nil {
		hooks = append(hooks, usersink.Hook{Sink: c.activitySink})
	}
	if !c.Config.Features.Activity {
		hooks = nil
	}
	c.emitter = activity.NewEmitter(hooks)
}

func (c *Container) configureFunctions() error {
	c.registry = functions.NewRegistry()
	checker := subscriptions.NewChecker(c.profiles)
	if err := checker.Register(c.registry, c.Config.Subscriptions.FunctionName); err != nil {
		return err
	}

	if c.invoker != nil {
		return nil
	}
	baseURL := strings.TrimSpace(c.Config.Subscriptions.BaseURL)
	if baseURL == "" {
		c.invoker = c.registry
		return nil
	}

	client := c.httpClient
	if client == nil {
		client = &http.Client{Timeout: c.Config.Subscriptions.Timeout}
	}
	invoker, err := functions.NewHTTPInvoker(baseURL, c.Config.Subscriptions.APIKey,
		functions.WithHTTPClient(client),
		functions.WithHTTPLogger(logging.FunctionsLogger(c.loggerProvider)),
	)
	if err != nil {
		return err
	}
	c.invoker = invoker
	return nil
}

func (c *Container) configureServices() {
	c.countrySvc = countries.NewService(c.countryRepo, c.cityRepo, c.sheetRepo,
		countries.WithQueryClient(c.queryClient),
		countries.WithLogger(logging.CountriesLogger(c.loggerProvider)),
	)
	c.contentSvc = countrycontent.NewService(c.contentRepo,
		countrycontent.WithQueryClient(c.queryClient),
		countrycontent.WithLogger(logging.ContentLogger(c.loggerProvider)),
	)
	c.tripSvc = trips.NewService(c.tripRepo,
		trips.WithActivityEmitter(c.emitter),
		trips.WithLogger(logging.TripsLogger(c.loggerProvider)),
	)

	parse := c.Config.Markdown.Parser
	c.renderer = markdown.NewRenderer(markdown.WithParseOptions(interfaces.ParseOptions{
		Extensions: parse.Extensions,
		HardWraps:  parse.HardWraps,
		SafeMode:   parse.SafeMode,
	}))
	c.importer = markdown.NewImporter(markdown.ImporterConfig{
		Countries: c.countrySvc,
		Content:   c.contentSvc,
		Logger:    logging.MarkdownLogger(c.loggerProvider),
	})
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if !c.ownsDB || c.bunDB == nil {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	c.ownsDB = false
	return err
}

// BunDB exposes the database, nil in memory mode.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// LoggerProvider exposes the selected logger provider, nil when disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// QueryClient exposes the shared query cache.
func (c *Container) QueryClient() *query.Client {
	return c.queryClient
}

// CountryService returns the country read service.
func (c *Container) CountryService() countries.Service {
	return c.countrySvc
}

// ContentService returns the country content service.
func (c *Container) ContentService() countrycontent.Service {
	return c.contentSvc
}

// TripService returns the stateless trip service.
func (c *Container) TripService() trips.Service {
	return c.tripSvc
}

// MarkdownRenderer returns the styled renderer.
func (c *Container) MarkdownRenderer() *markdown.Renderer {
	return c.renderer
}

// MarkdownImporter returns the content importer.
func (c *Container) MarkdownImporter() *markdown.Importer {
	return c.importer
}

// FunctionRegistry returns the in-process function registry.
func (c *Container) FunctionRegistry() *functions.Registry {
	return c.registry
}

// FunctionInvoker returns the invoker trackers call.
func (c *Container) FunctionInvoker() interfaces.FunctionInvoker {
	return c.invoker
}

// NewTripsStore builds a per-user trips store.
func (c *Container) NewTripsStore() *trips.Store {
	return trips.NewStore(c.tripSvc, trips.WithStoreLogger(logging.TripsLogger(c.loggerProvider)))
}

// NewSubscriptionTracker builds a per-user subscription tracker.
func (c *Container) NewSubscriptionTracker() *subscriptions.Tracker {
	return subscriptions.NewTracker(c.invoker,
		subscriptions.WithFunctionName(c.Config.Subscriptions.FunctionName),
		subscriptions.WithLogger(logging.SubscriptionsLogger(c.loggerProvider)),
	)
}

// NewPremiumModal builds an independent premium modal state holder.
func (c *Container) NewPremiumModal() *premium.Modal {
	return premium.NewModal()
}

// ErrI18NDisabled is returned by Translator when translations are off.
var ErrI18NDisabled = errors.New("di: i18n disabled")

// Translator loads translation resources on first use.
func (c *Container) Translator(ctx context.Context) (*i18n.Translator, error) {
	if !c.Config.I18N.Enabled {
		return nil, ErrI18NDisabled
	}
	c.translatorOnce.Do(func() {
		cfg := i18n.DefaultExtractionConfig()
		cfg.Locales = c.Config.I18N.Locales
		cfg.DefaultLocale = c.Config.DefaultLocale
		cfg.DefaultNamespace = c.Config.I18N.DefaultNamespace
		cfg.Output = "$LOCALE/$NAMESPACE.json"

		resources, err := i18n.NewLoader(os.DirFS(c.Config.I18N.ResourcesDir), cfg).Load(ctx)
		if err != nil {
			c.translatorErr = err
			return
		}
		c.translator = i18n.NewTranslator(resources, cfg)
	})
	return c.translator, c.translatorErr
}

// CountryRepository exposes the country repository for seeding.
func (c *Container) CountryRepository() countries.CountryRepository {
	return c.countryRepo
}

// CityRepository exposes the city repository for seeding.
func (c *Container) CityRepository() countries.CityRepository {
	return c.cityRepo
}

// SheetRepository exposes the country sheet repository for seeding.
func (c *Container) SheetRepository() countries.SheetRepository {
	return c.sheetRepo
}

// ProfileSource exposes where subscription checks read profiles.
func (c *Container) ProfileSource() subscriptions.ProfileSource {
	return c.profiles
}

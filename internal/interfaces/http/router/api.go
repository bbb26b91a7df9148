package router

import (
	"github.com/faktura/backend/internal/infrastructure/auth"
	"github.com/faktura/backend/internal/infrastructure/config"
	"github.com/faktura/backend/internal/infrastructure/logger"
	"github.com/faktura/backend/internal/interfaces/http/handler"
	"github.com/faktura/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers are the resource handlers mounted by NewEngine
type Handlers struct {
	Health   *handler.HealthHandler
	Company  *handler.CompanyHandler
	Customer *handler.CustomerHandler
	Product  *handler.ProductHandler
	Invoice  *handler.InvoiceHandler
	Offer    *handler.OfferHandler
	Expense  *handler.ExpenseHandler
	Dunning  *handler.DunningHandler
	Report   *handler.ReportHandler
}

// Options configure the middleware chain of the API engine
type Options struct {
	Logger  *zap.Logger
	HTTP    config.HTTPConfig
	Swagger config.SwaggerConfig
	// JWTService enables bearer authentication; nil leaves the API open and
	// requires Tenant.HeaderEnabled to resolve tenants
	JWTService *auth.JWTService
	Tenant     middleware.TenantMiddlewareConfig
	Tracing    middleware.TracingConfig
	// Meter enables HTTP metrics
	Meter     metric.Meter
	Profiling bool
	// RateLimiter is applied per tenant, or per client IP before the tenant
	// is known; nil disables rate limiting
	RateLimiter middleware.Limiter
	Security    middleware.SecurityConfig
	APIVersion  string
}

// NewEngine builds the gin engine with the global middleware chain and all
// API routes
func NewEngine(opts Options, h Handlers) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(opts.Tracing),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log),
	)
	if opts.Meter != nil {
		metrics, err := middleware.HTTPMetrics(opts.Meter)
		if err != nil {
			return nil, err
		}
		engine.Use(metrics)
	}
	if opts.Profiling {
		engine.Use(middleware.Profiling())
	}
	engine.Use(
		middleware.SecureWithConfig(opts.Security),
		middleware.CORS(opts.HTTP),
		middleware.BodyLimit(opts.HTTP.MaxBodySize),
	)

	var jwtMiddleware gin.HandlerFunc
	if opts.JWTService != nil {
		jwtMiddleware = middleware.JWTAuthMiddlewareWithConfig(middleware.DefaultJWTConfig(opts.JWTService))
	}

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(opts.Swagger, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := NewRouter(engine, WithAPIVersion(apiVersion(opts)))
	if jwtMiddleware != nil {
		r.Use(jwtMiddleware)
	}
	if h.Health != nil {
		r.Register(NewDomainGroup("health", "/health").GET("", h.Health.Health))
	}

	scoped := []gin.HandlerFunc{middleware.TenantMiddleware(opts.Tenant)}
	var onboarding []gin.HandlerFunc
	if opts.RateLimiter != nil {
		limit := middleware.RateLimit(opts.RateLimiter, log)
		scoped = append(scoped, limit)
		onboarding = append(onboarding, limit)
	}
	for _, g := range APIGroups(h, scoped, onboarding) {
		r.Register(g)
	}

	r.Setup()
	return engine, nil
}

func apiVersion(opts Options) string {
	if opts.APIVersion == "" {
		return "v1"
	}
	return opts.APIVersion
}

// APIGroups returns the resource route groups below the API prefix. Groups
// whose handler is nil are left out. Tenant-scoped groups run the scoped
// middleware; creating a company happens before a tenant exists and only runs
// onboarding.
func APIGroups(h Handlers, scoped, onboarding []gin.HandlerFunc) []*DomainGroup {
	var groups []*DomainGroup

	if h.Company != nil {
		companies := NewDomainGroup("companies", "/companies")
		companies.POST("", withMiddleware(onboarding, h.Company.Create)...).
			GET("", withMiddleware(scoped, h.Company.List)...)
		companies.Group("company", "/:id").
			Use(scoped...).
			GET("", h.Company.Get).
			PUT("", h.Company.Update).
			PUT("/dunning-settings", h.Company.UpdateDunningSettings).
			POST("/deactivate", h.Company.Deactivate)
		groups = append(groups, companies)
	}

	if h.Customer != nil {
		customers := NewDomainGroup("customers", "/customers")
		customers.POST("", h.Customer.Create).
			GET("", h.Customer.List).
			GET("/:id", h.Customer.Get).
			PUT("/:id", h.Customer.Update).
			DELETE("/:id", h.Customer.Delete).
			POST("/:id/deactivate", h.Customer.Deactivate)
		groups = append(groups, customers.Use(scoped...))
	}

	if h.Product != nil {
		products := NewDomainGroup("products", "/products")
		products.POST("", h.Product.Create).
			GET("", h.Product.List).
			GET("/:id", h.Product.Get).
			PUT("/:id", h.Product.Update).
			POST("/:id/deactivate", h.Product.Deactivate)
		groups = append(groups, products.Use(scoped...))
	}

	if h.Invoice != nil {
		invoices := NewDomainGroup("invoices", "/invoices")
		invoices.POST("", h.Invoice.Create).
			GET("", h.Invoice.List).
			GET("/:id", h.Invoice.Get).
			PUT("/:id", h.Invoice.Update).
			DELETE("/:id", h.Invoice.Delete).
			POST("/:id/issue", h.Invoice.Issue).
			POST("/:id/payments", h.Invoice.RecordPayment).
			POST("/:id/cancel", h.Invoice.Cancel).
			POST("/:id/correct", h.Invoice.Correct).
			POST("/:id/write-off", h.Invoice.WriteOff).
			POST("/:id/dunning-block", h.Invoice.BlockDunning).
			DELETE("/:id/dunning-block", h.Invoice.UnblockDunning).
			GET("/:id/notices", h.Invoice.ListNotices)
		if h.Dunning != nil {
			invoices.GET("/:id/dunning-preview", h.Dunning.PreviewInvoice).
				POST("/:id/escalate", h.Dunning.EscalateInvoice)
		}
		groups = append(groups, invoices.Use(scoped...))
	}

	if h.Offer != nil {
		offers := NewDomainGroup("offers", "/offers")
		offers.POST("", h.Offer.Create).
			GET("", h.Offer.List).
			GET("/:id", h.Offer.Get).
			POST("/:id/send", h.Offer.Send).
			POST("/:id/accept", h.Offer.Accept).
			POST("/:id/reject", h.Offer.Reject).
			POST("/:id/convert", h.Offer.Convert)
		groups = append(groups, offers.Use(scoped...))
	}

	if h.Expense != nil {
		expenses := NewDomainGroup("expenses", "/expenses")
		expenses.POST("", h.Expense.Create).
			GET("", h.Expense.List).
			GET("/:id", h.Expense.Get).
			DELETE("/:id", h.Expense.Delete).
			POST("/:id/receipt-upload", h.Expense.RequestReceiptUpload).
			GET("/:id/receipt", h.Expense.ReceiptDownloadURL)
		groups = append(groups, expenses.Use(scoped...))
	}

	if h.Dunning != nil {
		dunning := NewDomainGroup("dunning", "/dunning")
		dunning.POST("/runs", h.Dunning.Run).
			GET("/runs", h.Dunning.ListRuns).
			GET("/runs/:id/notices", h.Dunning.RunNotices).
			GET("/preview", h.Dunning.PreviewTenant)
		groups = append(groups, dunning.Use(scoped...))
	}

	if h.Report != nil {
		reports := NewDomainGroup("reports", "/reports")
		reports.GET("/open-items", h.Report.OpenItems)
		groups = append(groups, reports.Use(scoped...))
	}

	return groups
}

func withMiddleware(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	handlers := make([]gin.HandlerFunc, 0, len(mw)+1)
	handlers = append(handlers, mw...)
	return append(handlers, h)
}

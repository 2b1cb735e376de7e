package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/comercio/internal/auth"
	authdomain "github.com/smallbiznis/comercio/internal/auth/domain"
	"github.com/smallbiznis/comercio/internal/auth/session"
	"github.com/smallbiznis/comercio/internal/authorization"
	"github.com/smallbiznis/comercio/internal/category"
	categorydomain "github.com/smallbiznis/comercio/internal/category/domain"
	"github.com/smallbiznis/comercio/internal/client"
	clientdomain "github.com/smallbiznis/comercio/internal/client/domain"
	"github.com/smallbiznis/comercio/internal/config"
	"github.com/smallbiznis/comercio/internal/dashboard"
	dashboarddomain "github.com/smallbiznis/comercio/internal/dashboard/domain"
	"github.com/smallbiznis/comercio/internal/invoicemail"
	"github.com/smallbiznis/comercio/internal/location"
	locationdomain "github.com/smallbiznis/comercio/internal/location/domain"
	"github.com/smallbiznis/comercio/internal/product"
	productdomain "github.com/smallbiznis/comercio/internal/product/domain"
	"github.com/smallbiznis/comercio/internal/providers/email"
	"github.com/smallbiznis/comercio/internal/providers/excel"
	"github.com/smallbiznis/comercio/internal/providers/pdf"
	"github.com/smallbiznis/comercio/internal/sale"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
	"github.com/smallbiznis/comercio/internal/supplier"
	supplierdomain "github.com/smallbiznis/comercio/internal/supplier/domain"
	"github.com/smallbiznis/comercio/internal/user"
	userdomain "github.com/smallbiznis/comercio/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	auth.Module,
	session.Module,
	category.Module,
	location.Module,
	supplier.Module,
	client.Module,
	product.Module,
	user.Module,
	sale.Module,
	dashboard.Module,
	email.Module,
	pdf.Module,
	excel.Module,
	invoicemail.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(requestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	sessions     *session.Manager
	authsvc      authdomain.Service
	authzSvc     authorization.Service
	categorySvc  categorydomain.Service
	locationSvc  locationdomain.Service
	supplierSvc  supplierdomain.Service
	clientSvc    clientdomain.Service
	productSvc   productdomain.Service
	userSvc      userdomain.Service
	saleSvc      saledomain.Service
	dashboardSvc dashboarddomain.Service
	pdfProvider  pdf.Provider
	excelSvc     excel.Provider
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	Sessions     *session.Manager
	Authsvc      authdomain.Service
	AuthzSvc     authorization.Service
	CategorySvc  categorydomain.Service
	LocationSvc  locationdomain.Service
	SupplierSvc  supplierdomain.Service
	ClientSvc    clientdomain.Service
	ProductSvc   productdomain.Service
	UserSvc      userdomain.Service
	SaleSvc      saledomain.Service
	DashboardSvc dashboarddomain.Service
	PDFProvider  pdf.Provider
	ExcelSvc     excel.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		sessions:     p.Sessions,
		authsvc:      p.Authsvc,
		authzSvc:     p.AuthzSvc,
		categorySvc:  p.CategorySvc,
		locationSvc:  p.LocationSvc,
		supplierSvc:  p.SupplierSvc,
		clientSvc:    p.ClientSvc,
		productSvc:   p.ProductSvc,
		userSvc:      p.UserSvc,
		saleSvc:      p.SaleSvc,
		dashboardSvc: p.DashboardSvc,
		pdfProvider:  p.PDFProvider,
		excelSvc:     p.ExcelSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.AuthRequired())

	// -------- Categories --------
	api.GET("/categories", s.requireAction(authorization.ObjectCategory, authorization.ActionView), s.ListCategories)
	api.POST("/categories", s.requireAction(authorization.ObjectCategory, authorization.ActionCreate), s.CreateCategory)
	api.GET("/categories/:id", s.requireAction(authorization.ObjectCategory, authorization.ActionView), s.GetCategoryByID)
	api.PATCH("/categories/:id", s.requireAction(authorization.ObjectCategory, authorization.ActionUpdate), s.UpdateCategory)
	api.DELETE("/categories/:id", s.requireAction(authorization.ObjectCategory, authorization.ActionDelete), s.DeleteCategory)

	// -------- Locations --------
	api.GET("/locations", s.requireAction(authorization.ObjectLocation, authorization.ActionView), s.ListLocations)
	api.POST("/locations", s.requireAction(authorization.ObjectLocation, authorization.ActionCreate), s.CreateLocation)
	api.GET("/locations/:id", s.requireAction(authorization.ObjectLocation, authorization.ActionView), s.GetLocationByID)
	api.PATCH("/locations/:id", s.requireAction(authorization.ObjectLocation, authorization.ActionUpdate), s.UpdateLocation)
	api.DELETE("/locations/:id", s.requireAction(authorization.ObjectLocation, authorization.ActionDelete), s.DeleteLocation)

	// -------- Suppliers --------
	api.GET("/suppliers", s.requireAction(authorization.ObjectSupplier, authorization.ActionView), s.ListSuppliers)
	api.POST("/suppliers", s.requireAction(authorization.ObjectSupplier, authorization.ActionCreate), s.CreateSupplier)
	api.GET("/suppliers/:id", s.requireAction(authorization.ObjectSupplier, authorization.ActionView), s.GetSupplierByID)
	api.PATCH("/suppliers/:id", s.requireAction(authorization.ObjectSupplier, authorization.ActionUpdate), s.UpdateSupplier)
	api.DELETE("/suppliers/:id", s.requireAction(authorization.ObjectSupplier, authorization.ActionDelete), s.DeleteSupplier)

	// -------- Clients --------
	api.GET("/clients", s.requireAction(authorization.ObjectClient, authorization.ActionView), s.ListClients)
	api.POST("/clients", s.requireAction(authorization.ObjectClient, authorization.ActionCreate), s.CreateClient)
	api.GET("/clients/:id", s.requireAction(authorization.ObjectClient, authorization.ActionView), s.GetClientByID)
	api.PATCH("/clients/:id", s.requireAction(authorization.ObjectClient, authorization.ActionUpdate), s.UpdateClient)
	api.DELETE("/clients/:id", s.requireAction(authorization.ObjectClient, authorization.ActionDelete), s.DeleteClient)

	// -------- Products --------
	api.GET("/products", s.requireAction(authorization.ObjectProduct, authorization.ActionView), s.ListProducts)
	api.POST("/products", s.requireAction(authorization.ObjectProduct, authorization.ActionCreate), s.CreateProduct)
	api.GET("/products/:id", s.requireAction(authorization.ObjectProduct, authorization.ActionView), s.GetProductByID)
	api.PATCH("/products/:id", s.requireAction(authorization.ObjectProduct, authorization.ActionUpdate), s.UpdateProduct)
	api.DELETE("/products/:id", s.requireAction(authorization.ObjectProduct, authorization.ActionDelete), s.DeleteProduct)

	// -------- Users --------
	api.GET("/users", s.requireAction(authorization.ObjectUser, authorization.ActionView), s.ListUsers)
	api.POST("/users", s.requireAction(authorization.ObjectUser, authorization.ActionCreate), s.CreateUser)
	api.GET("/users/:id", s.requireAction(authorization.ObjectUser, authorization.ActionView), s.GetUserByID)
	api.PATCH("/users/:id", s.requireAction(authorization.ObjectUser, authorization.ActionUpdate), s.UpdateUser)
	api.DELETE("/users/:id", s.requireAction(authorization.ObjectUser, authorization.ActionDelete), s.DeleteUser)

	// -------- Sales --------
	api.GET("/sales", s.requireAction(authorization.ObjectSale, authorization.ActionView), s.ListSales)
	api.POST("/sales", s.requireAction(authorization.ObjectSale, authorization.ActionCreate), s.CreateSale)
	api.GET("/sales/:id", s.requireAction(authorization.ObjectSale, authorization.ActionView), s.GetSaleByID)
	api.PATCH("/sales/:id", s.requireAction(authorization.ObjectSale, authorization.ActionUpdate), s.UpdateSale)
	api.DELETE("/sales/:id", s.requireAction(authorization.ObjectSale, authorization.ActionDelete), s.DeleteSale)

	// -------- Dashboards --------
	api.GET("/dashboards/management", s.requireAction(authorization.ObjectDashboard, authorization.ActionView), s.GetManagementDashboard)
	api.GET("/dashboards/operational", s.requireAction(authorization.ObjectDashboard, authorization.ActionView), s.GetOperationalDashboard)

	// -------- Exports --------
	api.GET("/exports/sales.xlsx", s.requireAction(authorization.ObjectExport, authorization.ActionView), s.ExportSalesWorkbook)
	api.GET("/sales/:id/sheet.xlsx", s.requireAction(authorization.ObjectExport, authorization.ActionView), s.ExportSaleSheet)
	api.GET("/sales/:id/invoice.pdf", s.requireAction(authorization.ObjectExport, authorization.ActionView), s.RenderSaleInvoice)
}

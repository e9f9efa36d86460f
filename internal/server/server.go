package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/gateway"
	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/processor"
)

// Config holds server configuration
type Config struct {
	Address      string
	TallyURL     string
	Company      string
	HomeState    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
	Logger       *zap.Logger
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var gwOpts []gateway.ClientOption
	if config.TallyURL != "" {
		gwOpts = append(gwOpts, gateway.WithBaseURL(config.TallyURL))
	}
	gwOpts = append(gwOpts, gateway.WithLogger(logger))

	pipeline := processor.NewPipeline(
		processor.WithCompany(config.Company),
		processor.WithHomeState(config.HomeState),
		processor.WithGateway(gateway.NewClient(gwOpts...)),
		processor.WithLogger(logger),
	)

	s := &Server{
		config:   config,
		router:   router,
		pipeline: pipeline,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Encode endpoints
		v1.POST("/encode/invoice", s.handleEncodeInvoice)
		v1.POST("/encode/bank", s.handleEncodeBank)

		// Tally endpoints
		v1.POST("/tally/push", s.handlePush)
		v1.GET("/tally/status", s.handleStatus)
		v1.GET("/tally/ledgers", s.handleLedgers)
		v1.GET("/tally/companies", s.handleCompanies)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleEncodeInvoice(c *gin.Context) {
	var req EncodeInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Record == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing record"})
		return
	}

	// Each request gets its own ledger set; the caller persists the
	// known names between calls if dedup across requests matters.
	ledgers := model.NewLedgerSet(req.KnownLedgers...)

	var result *processor.Result
	if req.Push {
		result = s.pipeline.EncodeAndPush(c.Request.Context(), req.Record, ledgers)
	} else {
		result = s.pipeline.EncodeInvoice(req.Record, ledgers)
	}
	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    result.Error.Error(),
			"warnings": result.Warnings,
		})
		return
	}

	c.JSON(http.StatusOK, EncodeResponse{
		XML:      result.XML,
		Warnings: result.Warnings,
		Gateway:  result.Gateway,
		Ledgers:  ledgers.Names(),
	})
}

func (s *Server) handleEncodeBank(c *gin.Context) {
	var req EncodeBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Statement == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing statement"})
		return
	}

	ledgers := model.NewLedgerSet(req.KnownLedgers...)
	result := s.pipeline.EncodeBank(req.Statement, ledgers)
	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    result.Error.Error(),
			"warnings": result.Warnings,
		})
		return
	}

	gw := result.Gateway
	if req.Push {
		pushed := s.pipeline.Push(c.Request.Context(), result.XML)
		gw = &pushed
	}

	c.JSON(http.StatusOK, EncodeResponse{
		XML:      result.XML,
		Warnings: result.Warnings,
		Gateway:  gw,
		Ledgers:  ledgers.Names(),
	})
}

func (s *Server) handlePush(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	result := s.pipeline.Push(c.Request.Context(), string(body))
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, result)
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.pipeline.Status(c.Request.Context()))
}

func (s *Server) handleLedgers(c *gin.Context) {
	set, err := s.pipeline.Ledgers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch ledgers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, LedgersResponse{
		Ledgers: set.Names(),
		Count:   set.Len(),
	})
}

func (s *Server) handleCompanies(c *gin.Context) {
	names, err := s.pipeline.Companies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch companies: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, CompaniesResponse{Companies: names})
}

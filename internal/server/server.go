package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smartserve/backend/internal/config"
	"github.com/smartserve/backend/internal/core"
	"github.com/smartserve/backend/internal/embed"
	"github.com/smartserve/backend/internal/menu"
	"github.com/smartserve/backend/internal/store"
)

type Server struct {
	App  *core.SmartServe
	cfg  *config.Config
	menu *menu.Loader
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}
	applyEnvOverrides(cfg)
	return NewServerWithConfig(cfg)
}

// NewServerWithConfig builds a server from an explicit configuration.
func NewServerWithConfig(cfg *config.Config) *Server {
	st, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	menuLoader, err := menu.NewLoader(cfg.MenuPath)
	if err != nil {
		log.Fatalf("Failed to load menu: %v", err)
	}

	// A broken embedding configuration must not kill the demo; the
	// recommendation pipeline degrades to its lexical tier instead.
	embedder, err := embed.NewEmbedder(context.Background(), cfg.Embedding)
	if err != nil {
		log.Printf("Embedding backend unavailable: %v", err)
		embedder = nil
	}

	app, err := core.NewSmartServe(cfg, st, menuLoader, embedder)
	if err != nil {
		log.Fatalf("Failed to initialize pipelines: %v", err)
	}

	return &Server{App: app, cfg: cfg, menu: menuLoader}
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("EMBEDDING_PROVIDER"); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("EMBEDDING_BASE_URL"); v != "" {
		cfg.Embedding.BaseURL = v
	}
	if v := os.Getenv("RECOMMEND_STRATEGY"); v != "" {
		cfg.Recommend.Strategy = v
	}
	if v := os.Getenv("VERIFY_POLICY"); v != "" {
		cfg.Verify.Policy = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(CorrelationID(), CORS(s.cfg.Server.AllowOrigins))

	r.GET("/menu", s.GetMenu)
	r.GET("/capabilities", s.GetCapabilities)

	r.POST("/auth/login", s.Login)
	r.POST("/auth/register", s.Register)

	r.POST("/recommend", s.Recommend)
	r.POST("/order", s.CreateOrder)
	r.GET("/kds/:id", s.KitchenStatus)
	r.POST("/verify/:id", s.Verify)

	r.POST("/admin/rebuild-index", s.RebuildIndex)

	return r
}

func (s *Server) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, s.menu.Items())
}

func (s *Server) GetCapabilities(c *gin.Context) {
	type capabilityStatus struct {
		Name   string `json:"name"`
		Usable bool   `json:"usable"`
		Error  string `json:"error,omitempty"`
	}
	var out []capabilityStatus
	for _, st := range s.App.Registry.Snapshot() {
		cs := capabilityStatus{Name: st.Name, Usable: st.Usable}
		if st.Err != nil {
			cs.Error = st.Err.Error()
		}
		out = append(out, cs)
	}
	c.JSON(http.StatusOK, gin.H{"capabilities": out})
}

type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := s.App.Store.GetUserByPhone(c.Request.Context(), req.Phone)
	if errors.Is(err, store.ErrUserNotFound) {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}
	if err != nil {
		log.Printf("Login failed for phone=%s: %v", req.Phone, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": true, "user": user})
}

type RegisterRequest struct {
	Phone string `json:"phone" binding:"required"`
	Name  string `json:"name"`
}

func (s *Server) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// All new accounts start with the in-store profile.
	user, err := s.App.Store.CreateUser(c.Request.Context(), req.Phone, req.Name, "in_store")
	if errors.Is(err, store.ErrUserExists) {
		c.JSON(http.StatusOK, gin.H{"status": "exists", "phone": req.Phone})
		return
	}
	if err != nil {
		log.Printf("Register failed for phone=%s: %v", req.Phone, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "created", "phone": user.Phone, "profile": user.Profile})
}

type RecommendRequest struct {
	User     string `json:"user"`
	Time     string `json:"time"`
	TicketID int64  `json:"ticketId"`
	Profile  string `json:"profile"`
}

func (s *Server) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Profile == "" {
		req.Profile = "returning"
	}

	recs, err := s.App.Recommend(c.Request.Context(), req.User, req.Profile, req.Time, req.TicketID)
	if err != nil {
		log.Printf("Recommend failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recommendation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

type OrderRequest struct {
	Profile string   `json:"profile" binding:"required"`
	Items   []string `json:"items"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ticket, err := s.App.PlaceOrder(c.Request.Context(), req.Profile, req.Items)
	if errors.Is(err, core.ErrNoItems) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No items provided"})
		return
	}
	if err != nil {
		log.Printf("Order creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order creation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": ticket.ID, "status": ticket.Status, "items": ticket.Items})
}

func (s *Server) KitchenStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket id"})
		return
	}

	ticket, outcome, err := s.App.KitchenStatus(c.Request.Context(), id)
	if errors.Is(err, store.ErrTicketNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		return
	}
	if err != nil {
		log.Printf("KDS lookup failed for ticket %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}

	resp := gin.H{"ticketId": ticket.ID, "status": ticket.Status}
	if outcome != nil {
		resp["verification"] = outcome
	} else {
		resp["verification"] = gin.H{"status": "pending", "missing": []string{}}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) Verify(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket id"})
		return
	}
	hint := c.Query("sample_hint")
	imageRef := c.Query("image")

	outcome, err := s.App.VerifyTicket(c.Request.Context(), id, imageRef, hint)
	if errors.Is(err, store.ErrTicketNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		return
	}
	if err != nil {
		log.Printf("Verification failed for ticket %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (s *Server) RebuildIndex(c *gin.Context) {
	s.App.RebuildIndex(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "rebuilt"})
}

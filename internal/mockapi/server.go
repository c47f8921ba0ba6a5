// Package mockapi is an in-memory stand-in for the hosted REST mock API the
// catalog client talks to. It serves any number of named collections with
// list/get/create/update/delete, assigns sequential string ids, and merges
// PUT bodies into the stored record the way the hosted service does.
//
// It backs cmd/mockapi for local development and the package tests.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviecatalog/internal/logging"
	"github.com/gin-gonic/gin"
)

// Item is a stored record. Values are whatever JSON decoding produced.
type Item = map[string]any

type collection struct {
	items  []Item
	nextID int
}

type fault struct {
	method     string
	collection string
	status     int
}

type Server struct {
	mu          sync.Mutex
	collections map[string]*collection
	faults      []fault
	log         logging.Logger
	engine      *gin.Engine
}

// New returns a server exposing the given collections, e.g. "users", "movies".
func New(log logging.Logger, names ...string) *Server {
	if log == nil {
		log = logging.Discard()
	}
	s := &Server{
		collections: make(map[string]*collection, len(names)),
		log:         log,
	}
	for _, n := range names {
		s.collections[n] = &collection{nextID: 1}
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.faultInjector())
	r.GET("/:collection", s.list)
	r.POST("/:collection", s.create)
	r.GET("/:collection/:id", s.get)
	r.PUT("/:collection/:id", s.update)
	r.DELETE("/:collection/:id", s.remove)
	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Seed appends items to a collection. Items keep their "id" when they have
// one; the id sequence continues after the largest numeric id seen.
func (s *Server) Seed(name string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("unknown collection %q", name)
	}
	for _, src := range items {
		it := clone(src)
		id := idOf(it)
		if id == "" {
			id = strconv.Itoa(col.nextID)
		}
		it["id"] = id
		if n, err := strconv.Atoi(id); err == nil && n >= col.nextID {
			col.nextID = n + 1
		}
		col.items = append(col.items, it)
	}
	return nil
}

// SeedJSON seeds from a document shaped {"users": [...], "movies": [...]}.
func (s *Server) SeedJSON(data []byte) error {
	var doc map[string][]Item
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode seed: %w", err)
	}
	for name, items := range doc {
		if err := s.Seed(name, items); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) LoadSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	return s.SeedJSON(data)
}

// Items returns a snapshot of a collection.
func (s *Server) Items(name string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[name]
	if !ok {
		return nil
	}
	out := make([]Item, 0, len(col.items))
	for _, it := range col.items {
		out = append(out, clone(it))
	}
	return out
}

// InjectFault makes the next request matching method and collection fail
// with status. Faults are consumed in the order they were injected.
func (s *Server) InjectFault(method, collection string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{method: method, collection: collection, status: status})
}

func (s *Server) takeFault(method, collection string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.faults {
		if f.method == method && f.collection == collection {
			s.faults = append(s.faults[:i], s.faults[i+1:]...)
			return f.status, true
		}
	}
	return 0, false
}

func (s *Server) faultInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		if status, ok := s.takeFault(c.Request.Method, c.Param("collection")); ok {
			c.AbortWithStatusJSON(status, "Injected failure")
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
			"request_id", c.GetHeader("X-Request-ID"),
		)
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, "Not found")
}

func (s *Server) list(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[c.Param("collection")]
	if !ok {
		notFound(c)
		return
	}
	out := make([]Item, 0, len(col.items))
	for _, it := range col.items {
		out = append(out, clone(it))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) get(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[c.Param("collection")]
	if !ok {
		notFound(c)
		return
	}
	idx := col.find(c.Param("id"))
	if idx < 0 {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, clone(col.items[idx]))
}

func (s *Server) create(c *gin.Context) {
	var body Item
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[c.Param("collection")]
	if !ok {
		notFound(c)
		return
	}
	body["id"] = strconv.Itoa(col.nextID)
	col.nextID++
	col.items = append(col.items, body)
	c.JSON(http.StatusCreated, clone(body))
}

func (s *Server) update(c *gin.Context) {
	var body Item
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[c.Param("collection")]
	if !ok {
		notFound(c)
		return
	}
	idx := col.find(c.Param("id"))
	if idx < 0 {
		notFound(c)
		return
	}
	stored := col.items[idx]
	for k, v := range body {
		if k == "id" {
			continue
		}
		stored[k] = v
	}
	c.JSON(http.StatusOK, clone(stored))
}

func (s *Server) remove(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[c.Param("collection")]
	if !ok {
		notFound(c)
		return
	}
	idx := col.find(c.Param("id"))
	if idx < 0 {
		notFound(c)
		return
	}
	deleted := col.items[idx]
	col.items = append(col.items[:idx], col.items[idx+1:]...)
	c.JSON(http.StatusOK, deleted)
}

func (col *collection) find(id string) int {
	for i, it := range col.items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}

func idOf(it Item) string {
	switch v := it["id"].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

func clone(it Item) Item {
	out := make(Item, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}

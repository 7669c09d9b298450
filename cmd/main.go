package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/krisalay/lru-cache/engine"
	"github.com/krisalay/lru-cache/shard"
	"github.com/krisalay/lru-cache/writepolicy"
)

// ================= BACKING STORE =================

// Product is the record the demo caches: rows in a SQLite table standing
// in for whatever slow backing store a real deployment would have.
type Product struct {
	ID    string `gorm:"primaryKey"`
	Name  string
	Price float64
}

// SQLiteStore adapts a gorm database to the cache Loader contract.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Product{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) (Product, error) {
	var p Product
	err := s.db.WithContext(ctx).First(&p, "id = ?", key).Error
	return p, err
}

func (s *SQLiteStore) Put(ctx context.Context, key string, value Product) error {
	return s.db.WithContext(ctx).Save(&value).Error
}

// ================= METRICS =================

type Metrics struct {
	mu        sync.Mutex
	hits      int
	misses    int
	evictions int
}

func (m *Metrics) Hit()      { m.mu.Lock(); m.hits++; m.mu.Unlock() }
func (m *Metrics) Miss()     { m.mu.Lock(); m.misses++; m.mu.Unlock() }
func (m *Metrics) Eviction() { m.mu.Lock(); m.evictions++; m.mu.Unlock() }

func (m *Metrics) Print() {
	fmt.Println("\n==================== METRICS ====================")
	fmt.Printf("HITS      : %d\n", m.hits)
	fmt.Printf("MISSES    : %d\n", m.misses)
	fmt.Printf("EVICTIONS : %d\n", m.evictions)
}

// ================= MAIN =================

func main() {
	ctx := context.Background()

	fmt.Println("\n==================== SYSTEM BOOT ====================")

	// ---------------- System Config ----------------
	fmt.Println("CACHE MODE      : READ-THROUGH + WRITE-BACK")
	fmt.Println("EVICTION POLICY : LRU (arena-backed)")
	fmt.Println("SHARDS          : 4")
	fmt.Println("CAPACITY        : 20 keys")

	// ---------------- Backing Store ----------------
	dbPath := filepath.Join(os.TempDir(), "lru-cache-demo.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Println("STORE  → open failed:", err)
		os.Exit(1)
	}

	// Seed the store with fake products keyed by UUID.
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = uuid.NewString()
		p := Product{
			ID:    ids[i],
			Name:  gofakeit.ProductName(),
			Price: gofakeit.Price(1, 500),
		}
		if err := store.Put(ctx, p.ID, p); err != nil {
			fmt.Println("STORE  → seed failed:", err)
			os.Exit(1)
		}
	}
	fmt.Printf("STORE  → seeded %d products in %s\n", len(ids), dbPath)

	// ---------------- Cache Stack ----------------
	metrics := &Metrics{}

	cache, err := shard.NewSharded[string, Product](4, 20, shard.StringHasher)
	if err != nil {
		fmt.Println("CACHE  → construction failed:", err)
		os.Exit(1)
	}

	writePolicy := writepolicy.NewWriteBackPolicy[string, Product](store, 1024)

	eng := engine.NewReadThrough[string, Product](
		cache,
		store,
		writePolicy,
		metrics,
	)

	// ====================================================
	fmt.Println("\n==================== 1) CACHE MISS ====================")
	p, _ := eng.Get(ctx, ids[0])
	fmt.Println("CACHE  → GET", ids[0][:8], "=", p.Name)

	// ====================================================
	fmt.Println("\n==================== 2) CACHE HIT ====================")
	p, _ = eng.Get(ctx, ids[0])
	fmt.Println("CACHE  → GET", ids[0][:8], "=", p.Name)

	// ====================================================
	fmt.Println("\n==================== 3) SINGLEFLIGHT ====================")

	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p, _ := eng.Get(ctx, ids[1])
			fmt.Printf("GOROUTINE-%d → GET %s = %v\n", id, ids[1][:8], p.Name)
		}(i)
	}
	wg.Wait()

	// ====================================================
	fmt.Println("\n==================== 4) EVICTION ====================")

	// Pull far more keys through the cache than it can hold.
	for _, id := range ids {
		if _, err := eng.Get(ctx, id); err != nil {
			fmt.Println("CACHE  → load failed:", err)
		}
	}
	fmt.Println("CACHE  → size after scan =", cache.Len(), "/", cache.Cap())

	// ====================================================
	fmt.Println("\n==================== 5) REMOVE ====================")

	eng.Remove(ids[0])
	fmt.Println("CACHE  → REMOVE", ids[0][:8])
	fmt.Println("CACHE  → contains after remove =", cache.Contains(ids[0]))

	// ====================================================
	metrics.Print()

	// ====================================================
	fmt.Println("\n==================== SHUTDOWN ====================")
	if err := eng.Close(); err != nil {
		fmt.Println("SYSTEM → write-back flush reported:", err)
	}
	fmt.Println("SYSTEM → cache closed cleanly")
}

package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-planilla/internal/domain"
	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
	"github.com/jhoicas/inventario-planilla/internal/domain/inventory"
	"github.com/jhoicas/inventario-planilla/pkg/logger"
	"github.com/jhoicas/inventario-planilla/pkg/metrics"
)

const (
	// DefaultTTL es la vigencia de la caché si no se configura otra.
	DefaultTTL = 30 * time.Second
	// DefaultForwardTimeout limita cada reenvío de un movimiento.
	DefaultForwardTimeout = 10 * time.Second
)

// Config parámetros del servicio de inventario.
type Config struct {
	TTL           time.Duration   // 0 = DefaultTTL
	LowStockBelow decimal.Decimal // umbral de stock bajo para Summary; 0 = 10
	Clock         Clock           // nil = time.Now

	ForwardTimeout time.Duration // 0 = DefaultForwardTimeout
}

// CacheStatus describe el estado de la caché para /health.
type CacheStatus struct {
	Fresh         bool       `json:"fresh"`
	Loaded        bool       `json:"loaded"`
	LastRefresh   *time.Time `json:"last_refresh,omitempty"`
	LastOutcome   string     `json:"last_outcome,omitempty"`
	Degraded      bool       `json:"degraded"`
	SampleBuckets []string   `json:"sample_buckets,omitempty"`
	StockCount    int        `json:"stock_count"`
	EntradaCount  int        `json:"entrada_count"`
	SalidaCount   int        `json:"salida_count"`
}

// Service mantiene en memoria stock, entradas y salidas leídos de la planilla publicada.
//
// El mutex solo protege la lectura y el reemplazo del estado; nunca se mantiene durante
// la descarga, así que dos refrescos pueden solaparse y gana el último en aplicar.
type Service struct {
	fetcher   Fetcher
	forwarder Forwarder
	log       *logger.Logger
	metrics   *metrics.InventoryMetrics
	ttl       time.Duration
	lowStock  decimal.Decimal
	now       Clock
	newID     func() string

	forwardTimeout time.Duration
	pending        sync.WaitGroup // reenvíos en curso

	mu          sync.Mutex
	stock       []entity.InventoryRecord
	entradas    []entity.InventoryRecord
	salidas     []entity.InventoryRecord
	lastRefresh time.Time
	loaded      bool
	lastOutcome inventory.OutcomeStatus
	sampleUsed  []inventory.Bucket
}

// NewService construye el servicio. La caché arranca con los datos de ejemplo y marcada
// como vencida, de modo que la primera lectura descarga la planilla.
func NewService(fetcher Fetcher, forwarder Forwarder, log *logger.Logger, m *metrics.InventoryMetrics, cfg Config) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.LowStockBelow.IsZero() {
		cfg.LowStockBelow = decimal.NewFromInt(10)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.ForwardTimeout <= 0 {
		cfg.ForwardTimeout = DefaultForwardTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	seed := inventory.SampleSnapshot()
	return &Service{
		fetcher:    fetcher,
		forwarder:  forwarder,
		log:        log,
		metrics:    m,
		ttl:        cfg.TTL,
		lowStock:   cfg.LowStockBelow,
		now:        cfg.Clock,
		newID:      func() string { return uuid.New().String() },
		stock:      seed.Stock,
		entradas:   seed.Entradas,
		salidas:    seed.Salidas,
		sampleUsed: seed.SampleBuckets,

		forwardTimeout: cfg.ForwardTimeout,
	}
}

// Init carga la planilla al arrancar. Si hubo que usar los datos de ejemplo devuelve un
// error (para avisar del modo degradado), pero la caché queda igualmente poblada.
func (s *Service) Init(ctx context.Context) error {
	out := s.Refresh(ctx)
	switch out.Status {
	case inventory.StatusFallback:
		return fmt.Errorf("%w: usando datos de ejemplo: %v", domain.ErrRemoteUnavailable, out.Err)
	case inventory.StatusFailed:
		return out.Err
	}
	return nil
}

// Refresh descarga la planilla y reemplaza la caché sin mirar el TTL.
// Nunca propaga el error de la descarga: el Outcome indica si se usaron datos de ejemplo.
// Solo la cancelación del llamador (StatusFailed) deja la caché intacta.
func (s *Service) Refresh(ctx context.Context) inventory.Outcome {
	start := time.Now()
	rows, err := s.fetcher.Fetch(ctx)
	s.metrics.ObserveFetch(time.Since(start))

	now := s.now()
	out := inventory.Resolve(ctx, rows, err, now)
	s.metrics.IncRefresh(string(out.Status))
	s.logOutcome(out, len(rows))

	if out.Status == inventory.StatusFailed {
		return out
	}

	s.mu.Lock()
	s.stock = out.Snapshot.Stock
	s.entradas = out.Snapshot.Entradas
	s.salidas = out.Snapshot.Salidas
	s.sampleUsed = out.Snapshot.SampleBuckets
	s.lastRefresh = now
	s.lastOutcome = out.Status
	s.loaded = true
	s.mu.Unlock()
	return out
}

// Sync refresca solo si la caché venció. Devuelve false si no hizo falta descargar.
func (s *Service) Sync(ctx context.Context) (inventory.Outcome, bool) {
	if !s.stale() {
		return inventory.Outcome{}, false
	}
	return s.Refresh(ctx), true
}

func (s *Service) stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loaded || s.now().Sub(s.lastRefresh) >= s.ttl
}

func (s *Service) logOutcome(out inventory.Outcome, rows int) {
	switch out.Status {
	case inventory.StatusLoaded:
		// Colecciones rellenadas con ejemplos se avisan como warning.
		level := s.log.Info
		if len(out.Snapshot.SampleBuckets) > 0 {
			level = s.log.Warn
		}
		level().Int("rows", rows).
			Strs("sample_buckets", bucketNames(out.Snapshot.SampleBuckets)).
			Int("stock", len(out.Snapshot.Stock)).
			Int("entradas", len(out.Snapshot.Entradas)).
			Int("salidas", len(out.Snapshot.Salidas)).
			Int("dropped", out.Snapshot.Dropped).
			Bool("synthesized", out.Snapshot.Synthesized).
			Msg("planilla cargada")
	case inventory.StatusFallback:
		s.log.Warn().Err(out.Err).Msg("planilla no disponible, usando datos de ejemplo")
	case inventory.StatusFailed:
		s.log.Debug().Err(out.Err).Msg("carga de planilla cancelada")
	}
}

// Status devuelve el estado actual de la caché sin refrescarla.
func (s *Service) Status() CacheStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := CacheStatus{
		Loaded:        s.loaded,
		Fresh:         s.loaded && s.now().Sub(s.lastRefresh) < s.ttl,
		LastOutcome:   string(s.lastOutcome),
		Degraded:      !s.loaded || s.lastOutcome == inventory.StatusFallback,
		SampleBuckets: bucketNames(s.sampleUsed),
		StockCount:    len(s.stock),
		EntradaCount:  len(s.entradas),
		SalidaCount:   len(s.salidas),
	}
	if s.loaded {
		t := s.lastRefresh
		st.LastRefresh = &t
	}
	return st
}

// ListStock devuelve una copia del stock, refrescando antes si la caché venció.
func (s *Service) ListStock(ctx context.Context) []entity.InventoryRecord {
	s.Sync(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return inventory.CloneRecords(s.stock)
}

// ListEntradas devuelve una copia de las entradas en el orden de la planilla.
func (s *Service) ListEntradas(ctx context.Context) []entity.InventoryRecord {
	s.Sync(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return inventory.CloneRecords(s.entradas)
}

// ListSalidas devuelve una copia de las salidas en el orden de la planilla.
func (s *Service) ListSalidas(ctx context.Context) []entity.InventoryRecord {
	s.Sync(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return inventory.CloneRecords(s.salidas)
}

// FindByCode busca el primer registro de stock con el código dado.
func (s *Service) FindByCode(ctx context.Context, code string) (entity.InventoryRecord, error) {
	code = strings.TrimSpace(code)
	s.Sync(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexByCode(s.stock, code); i >= 0 {
		return s.stock[i], nil
	}
	return entity.InventoryRecord{}, domain.ErrNotFound
}

// SearchStock filtra el stock por código, descripción o proveedor.
func (s *Service) SearchStock(ctx context.Context, query string) []entity.InventoryRecord {
	return inventory.Filter(s.ListStock(ctx), query)
}

// History devuelve las entradas o salidas (según kind) de la más reciente a la más
// antigua, filtradas por query.
func (s *Service) History(ctx context.Context, kind, query string) ([]entity.InventoryRecord, error) {
	var records []entity.InventoryRecord
	switch strings.ToUpper(kind) {
	case entity.KindEntrada:
		records = s.ListEntradas(ctx)
	case entity.KindSalida:
		records = s.ListSalidas(ctx)
	default:
		return nil, fmt.Errorf("%w: tipo de historial %q", domain.ErrInvalidInput, kind)
	}
	records = inventory.Filter(records, query)
	entity.SortByRecency(records)
	return records, nil
}

// RecentMovements devuelve las últimas entradas y salidas mezcladas (limit <= 0 usa 10).
func (s *Service) RecentMovements(ctx context.Context, limit int) []entity.Movement {
	s.Sync(ctx)
	s.mu.Lock()
	entradas := inventory.CloneRecords(s.entradas)
	salidas := inventory.CloneRecords(s.salidas)
	s.mu.Unlock()
	return inventory.MergeMovements(entradas, salidas, limit)
}

// Summary resume el stock actual.
func (s *Service) Summary(ctx context.Context) inventory.Summary {
	return inventory.Summarize(s.ListStock(ctx), s.lowStock)
}

func indexByCode(records []entity.InventoryRecord, code string) int {
	for i := range records {
		if records[i].Code == code {
			return i
		}
	}
	return -1
}

func bucketNames(buckets []inventory.Bucket) []string {
	if len(buckets) == 0 {
		return nil
	}
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = string(b)
	}
	return out
}

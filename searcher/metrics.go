package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	MaxDepth    int
	Budget      time.Duration
	Duration    time.Duration
	Nodes       int
	Evaluations int
	CacheHits   int
	Stores      int
	TimedOut    bool
}

type MetricsCollector interface {
	Start(maxDepth int, budget time.Duration)
	AddNode()
	AddEvaluation()
	AddCacheHit()
	AddStore()
	SetTimedOut()
	Complete() SearchMetric
}

type metricsCollector struct {
	maxDepth    int
	budget      time.Duration
	startTime   time.Time
	nodes       atomic.Int64
	evaluations atomic.Int64
	cacheHits   atomic.Int64
	stores      atomic.Int64
	timedOut    atomic.Bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(maxDepth int, budget time.Duration) {
	m.startTime = time.Now()
	m.maxDepth = maxDepth
	m.budget = budget
	m.nodes.Store(0)
	m.evaluations.Store(0)
	m.cacheHits.Store(0)
	m.stores.Store(0)
	m.timedOut.Store(false)
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *metricsCollector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *metricsCollector) AddStore() {
	m.stores.Add(1)
}

func (m *metricsCollector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *metricsCollector) Complete() SearchMetric {
	return SearchMetric{
		MaxDepth:    m.maxDepth,
		Budget:      m.budget,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
		CacheHits:   int(m.cacheHits.Load()),
		Stores:      int(m.stores.Load()),
		TimedOut:    m.timedOut.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(maxDepth int, budget time.Duration) {}
func (m *noMetricsCollector) AddNode()                                 {}
func (m *noMetricsCollector) AddEvaluation()                           {}
func (m *noMetricsCollector) AddCacheHit()                             {}
func (m *noMetricsCollector) AddStore()                                {}
func (m *noMetricsCollector) SetTimedOut()                             {}
func (m *noMetricsCollector) Complete() SearchMetric                   { return SearchMetric{} }

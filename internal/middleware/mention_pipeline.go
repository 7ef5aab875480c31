package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SentiCast/internal/domain/models"
	domrepo "SentiCast/internal/domain/repository"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, m *models.Mention) error
}

// MentionPipeline sits between the firehose and the processor.
// It validates, throttles per source, optionally transforms, and
// buffers when downstream is unavailable.
type MentionPipeline struct {
	proc     Proc
	metrics  domrepo.Metrics
	maxRPS   int
	bufSize  int
	bufCh    chan *models.Mention
	stopCh   chan struct{}
	started  bool
	mu       sync.Mutex
	lastSeen map[string]time.Time // per-source last accepted time
	// optional format transform hook
	transform func(*models.Mention) *models.Mention
	// metrics
	bufDepthGauge func(int)
	throttleWarn  func(string)
}

type PipelineOption func(*MentionPipeline)

// WithMaxRPS sets the max mentions per second per source.
func WithMaxRPS(n int) PipelineOption {
	return func(p *MentionPipeline) {
		if n > 0 {
			p.maxRPS = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *MentionPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// WithTransform sets a transformation hook to modify the mention format.
func WithTransform(fn func(*models.Mention) *models.Mention) PipelineOption {
	return func(p *MentionPipeline) { p.transform = fn }
}

// NewMentionPipeline creates a new pipeline.
func NewMentionPipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *MentionPipeline {
	p := &MentionPipeline{
		proc:     proc,
		metrics:  metrics,
		maxRPS:   50,   // default throttle per source
		bufSize:  1000, // default buffer
		bufCh:    make(chan *models.Mention, 1000),
		stopCh:   make(chan struct{}),
		lastSeen: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan *models.Mention, p.bufSize)
	}
	p.bufDepthGauge = func(n int) { p.metrics.RecordLatency("pipeline_buffer_depth", float64(n)) }
	p.throttleWarn = func(source string) { p.metrics.RecordError("pipeline_throttle_" + source) }
	return p
}

// Start launches background flushing of buffered mentions.
func (p *MentionPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case m := <-p.bufCh:
				if m == nil {
					continue
				}
				if err := p.proc.Process(ctx, m); err != nil {
					// exponential backoff with cap
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- m:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *MentionPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates, throttles, and forwards a mention downstream,
// buffering on errors.
func (p *MentionPipeline) Process(ctx context.Context, m *models.Mention) error {
	start := time.Now()
	if err := validateMention(m); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if p.transform != nil {
		m = p.transform(m)
		if err := validateMention(m); err != nil {
			p.metrics.RecordError("pipeline_transform_invalid")
			return err
		}
	}
	if !p.allow(m.Source, start) {
		// throttled; record and drop silently
		p.metrics.RecordError("pipeline_throttle")
		if p.throttleWarn != nil {
			p.throttleWarn(m.Source)
		}
		return nil
	}

	if err := p.proc.Process(ctx, m); err != nil {
		p.metrics.RecordError("pipeline_process")
		// buffer non-blocking
		select {
		case p.bufCh <- m:
			if p.bufDepthGauge != nil {
				p.bufDepthGauge(len(p.bufCh))
			}
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateMention(m *models.Mention) error {
	if m == nil {
		return fmt.Errorf("mention nil")
	}
	if m.ID == "" {
		return fmt.Errorf("id empty")
	}
	if !domrepo.IsValidSource(domrepo.Source(m.Source)) {
		return fmt.Errorf("unknown source %q", m.Source)
	}
	if m.Text == "" {
		return fmt.Errorf("text empty")
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("timestamp invalid")
	}
	return nil
}

func (p *MentionPipeline) allow(source string, now time.Time) bool {
	if p.maxRPS <= 0 {
		return true
	}
	// at most maxRPS accepted mentions per second per source
	last := p.lastSeen[source]
	if last.IsZero() {
		p.lastSeen[source] = now
		return true
	}
	if now.Sub(last) < time.Second/time.Duration(p.maxRPS) {
		return false
	}
	p.lastSeen[source] = now
	return true
}

package usecase

import (
	"context"

	"SentiCast/internal/domain/models"
	drepo "SentiCast/internal/domain/repository"
	mid "SentiCast/internal/middleware"
)

// MentionCollector reads the social firehose and feeds mentions through
// the pipeline into the processor.
type MentionCollector struct {
	stream  drepo.MentionStream
	proc    *MentionProcessor
	metrics drepo.Metrics
	pipe    *mid.MentionPipeline
}

// NewMentionCollector creates a new MentionCollector instance.
func NewMentionCollector(stream drepo.MentionStream, proc *MentionProcessor, metrics drepo.Metrics, pipe *mid.MentionPipeline) *MentionCollector {
	return &MentionCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the firehose stream is connected.
func (c *MentionCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *MentionCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	mCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, mCh, errCh)
	return nil
}

func (c *MentionCollector) consume(ctx context.Context, mCh <-chan *models.Mention, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			if !ok {
				// The stream's read goroutine has exited and closed
				// both channels. Reconnect and reattach to a fresh
				// pair, or give up on shutdown.
				if ctx.Err() != nil {
					return
				}
				if rerr := c.stream.Reconnect(ctx); rerr != nil {
					c.metrics.RecordError("stream_reconnect")
					return
				}
				mCh, errCh = c.stream.Read(ctx)
				continue
			}
			if err != nil {
				c.metrics.RecordError("stream")
			}
		case m, ok := <-mCh:
			if !ok {
				// Closed alongside errCh; park this case until the
				// errCh branch reattaches.
				mCh = nil
				continue
			}
			if m == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, m)
			} else {
				_ = c.proc.Process(ctx, m)
			}
		}
	}
}

func (c *MentionCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying MentionProcessor for lifecycle management.
func (c *MentionCollector) Processor() *MentionProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *MentionCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}

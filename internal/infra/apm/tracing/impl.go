package tracing

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.elastic.co/apm"
	"go.elastic.co/apm/module/apmgin"

	"github.com/lloydmeta/esversions/internal/domain/tracing"
)

const backgroundTxType = "backgroundjob"

// Tracer is a thin wrapper around APM's tracing implementation that also knows how
// to trace HTTP requests
type Tracer interface {
	tracing.Tracer

	// GinMiddleware returns a gin middleware that records a transaction per request
	GinMiddleware(engine *gin.Engine) gin.HandlerFunc
}

// Returns a thin wrapper around APM's global tracer
func NewTracer() Tracer {
	return &tracerImpl{getApmTracer: func() *apm.Tracer {
		return apm.DefaultTracer
	}}
}

type transactionsImpl struct {
	apmTx *apm.Transaction
}

func (t *transactionsImpl) Context() context.Context {
	return apm.ContextWithTransaction(context.Background(), t.apmTx)
}

func (t *transactionsImpl) End() {
	t.apmTx.End()
}

type tracerImpl struct {
	getApmTracer func() *apm.Tracer
}

func (t *tracerImpl) BackgroundTx(name string) tracing.Transaction {
	tx := t.getApmTracer().StartTransaction(name, backgroundTxType)
	return &transactionsImpl{apmTx: tx}
}

func (t *tracerImpl) GinMiddleware(engine *gin.Engine) gin.HandlerFunc {
	return apmgin.Middleware(engine, apmgin.WithTracer(t.getApmTracer()))
}

// <--- For testing

type noopTx struct{}

func (n noopTx) Context() context.Context {
	return context.Background()
}

func (n noopTx) End() {
}

type NoopTracer struct{}

func (n NoopTracer) BackgroundTx(name string) tracing.Transaction {
	return noopTx{}
}

func (n NoopTracer) GinMiddleware(engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// For testing -->

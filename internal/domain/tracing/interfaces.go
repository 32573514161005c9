package tracing

import "context"

// Transaction is a unit of traced work not tied to an HTTP request
type Transaction interface {
	Context() context.Context
	End()
}

type Tracer interface {
	// BackgroundTx starts a Transaction for work kicked off by the process itself, e.g. a cron job
	BackgroundTx(name string) Transaction
}

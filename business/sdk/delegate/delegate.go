// Package delegate provides the ability to make function calls between
// different domain packages when an import is not possible.
package delegate

import (
	"context"
	"fmt"

	"github.com/panelkit/panelkit/foundation/logger"
	"github.com/panelkit/panelkit/foundation/otel"
)

// Func represents a function that is registered and called by the system.
type Func func(context.Context, Data) error

// Delegate manages the set of functions to be called by domain packages when
// an import is not possible.
type Delegate struct {
	log   *logger.Logger
	funcs map[string]map[string][]Func
}

// New constructs a delegate for indirect api access.
func New(log *logger.Logger) *Delegate {
	return &Delegate{
		log:   log,
		funcs: make(map[string]map[string][]Func),
	}
}

// Register adds a function to be called for a specified domain and action.
func (d *Delegate) Register(domainType string, action string, fn Func) {
	aMap, ok := d.funcs[domainType]
	if !ok {
		aMap = make(map[string][]Func)
		d.funcs[domainType] = aMap
	}

	aMap[action] = append(aMap[action], fn)
}

// Call executes all functions registered for the specified domain and
// action. These functions are executed synchronously on the G making the call.
func (d *Delegate) Call(ctx context.Context, data Data) error {
	ctx, span := otel.AddSpan(ctx, "business.sdk.delegate.call")
	defer span.End()

	d.log.Info(ctx, "delegate call", "status", "started", "domainType", data.Domain, "action", data.Action, "params", data.RawParams)
	defer d.log.Info(ctx, "delegate call", "status", "completed")

	if dMap, ok := d.funcs[data.Domain]; ok {
		if funcs, ok := dMap[data.Action]; ok {
			for _, fn := range funcs {
				ctx := setRetrieveData(ctx)

				if err := fn(ctx, data); err != nil {
					d.log.Error(ctx, "delegate call", "msg", err)
				}
			}
		}
	}

	return nil
}

// =============================================================================

type ctxKey int

const key ctxKey = 1

func setRetrieveData(ctx context.Context) context.Context {
	return context.WithValue(ctx, key, true)
}

// Data represents the data to be sent for a delegate call.
type Data struct {
	Domain    string
	Action    string
	RawParams []byte
}

// String implements the Stringer interface.
func (d Data) String() string {
	return fmt.Sprintf("Domain: %s, Action: %s, Params: %s", d.Domain, d.Action, string(d.RawParams))
}

package flows

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

// branch is one secondary generation step. run stores its own result on success; fallback
// stores the substitute value when run fails.
type branch struct {
	name     string
	run      func(ctx context.Context) error
	fallback func()
}

// settle runs every branch concurrently and waits for all of them. A failed branch never
// cancels its siblings; its fallback is applied and its name is returned as a warning.
func (s *Service) settle(ctx context.Context, log *logger.Logger, flow string, branches ...branch) []string {
	errs := make([]error, len(branches))

	var g errgroup.Group
	for i, b := range branches {
		g.Go(func() (err error) {
			bctx, span := s.tracer.Start(ctx, "flow."+flow+"."+b.name)
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s panicked: %v", b.name, r)
				}
				if err != nil {
					span.RecordError(err)
					span.SetStatus(codes.Error, "fallback")
				}
				span.End()
				errs[i] = err
			}()
			return b.run(bctx)
		})
	}
	// Branch goroutines record their errors in errs; Wait only joins them.
	_ = g.Wait()

	var (
		warnings []string
		merr     *multierror.Error
	)
	for i, b := range branches {
		if errs[i] == nil {
			s.stage(flow, b.name, observability.OutcomeOK)
			continue
		}
		if b.fallback != nil {
			b.fallback()
		}
		s.stage(flow, b.name, observability.OutcomeFallback)
		warnings = append(warnings, b.name)
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", b.name, errs[i]))
	}
	if err := merr.ErrorOrNil(); err != nil {
		log.Warn("secondary generation degraded, using fallbacks", "branches", warnings, "error", err)
	}
	return warnings
}

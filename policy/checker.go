package policy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const checkerName = "PermissionChecker"

// PermissionChecker aggregates heterogeneous policies behind the Policy
// abstraction and evaluates them with OR semantics: policies run in
// registration order and evaluation stops at the first grant. If no policy
// is registered, access is always denied.
//
// Registration is append-only and serialized against in-flight evaluations;
// the recommended discipline is to fully populate the checker at startup
// and treat it as immutable thereafter.
//
// The checker itself implements Policy, so it composes under combinators
// like any other policy.
type PermissionChecker[S, A, R, C any] struct {
	mu       sync.RWMutex
	policies []Policy[S, A, R, C]

	logger    *zap.Logger
	observers []Observer
}

// CheckerOption configures a PermissionChecker.
type CheckerOption func(*checkerConfig)

type checkerConfig struct {
	logger    *zap.Logger
	observers []Observer
}

// WithLogger sets the logger used for evaluation outcomes.
func WithLogger(logger *zap.Logger) CheckerOption {
	return func(c *checkerConfig) {
		c.logger = logger
	}
}

// WithObserver registers an observer notified after every evaluation.
func WithObserver(o Observer) CheckerOption {
	return func(c *checkerConfig) {
		c.observers = append(c.observers, o)
	}
}

// NewPermissionChecker creates an empty checker.
func NewPermissionChecker[S, A, R, C any](opts ...CheckerOption) *PermissionChecker[S, A, R, C] {
	cfg := checkerConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &PermissionChecker[S, A, R, C]{
		logger:    cfg.logger,
		observers: cfg.observers,
	}
}

// AddPolicy appends a policy to the evaluation sequence. Policies cannot be
// removed once added.
func (c *PermissionChecker[S, A, R, C]) AddPolicy(p Policy[S, A, R, C]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.policies = append(c.policies, p)
}

// PolicyCount returns the number of registered policies.
func (c *PermissionChecker[S, A, R, C]) PolicyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.policies)
}

func (c *PermissionChecker[S, A, R, C]) Name() string { return checkerName }

// Evaluate implements Policy. The returned node records every policy that
// ran, in registration order; policies after the first grant never run.
func (c *PermissionChecker[S, A, R, C]) Evaluate(ctx context.Context, subject S, action A, resource R, env C) Result {
	c.mu.RLock()
	policies := c.policies
	c.mu.RUnlock()

	if len(policies) == 0 {
		return Deny(checkerName, "no policies configured")
	}

	children := make([]Result, 0, len(policies))
	for _, p := range policies {
		res := p.Evaluate(ctx, subject, action, resource, env)
		children = append(children, res)

		if res.Granted {
			return Result{
				Policy:    checkerName,
				Operation: OpOr,
				Granted:   true,
				Reason:    fmt.Sprintf("%s: %s", res.Policy, res.Reason),
				Children:  children,
			}
		}
	}

	return Result{
		Policy:    checkerName,
		Operation: OpOr,
		Reason:    "no policy granted access",
		Children:  children,
	}
}

// EvaluateAccess evaluates the registered policies against the request and
// returns the complete decision with its trace, logging the outcome and
// notifying any observers.
func (c *PermissionChecker[S, A, R, C]) EvaluateAccess(ctx context.Context, subject S, action A, resource R, env C) Evaluation {
	start := time.Now()
	root := c.Evaluate(ctx, subject, action, resource, env)
	duration := time.Since(start)

	eval := Evaluation{
		Granted: root.Granted,
		Reason:  root.Reason,
		Trace:   root,
	}

	decidedBy := checkerName
	if root.Granted && len(root.Children) > 0 {
		// The granting policy is always the last child evaluated.
		granting := root.Children[len(root.Children)-1]
		eval.Policy = granting.Policy
		eval.Reason = granting.Reason
		decidedBy = granting.Policy
	}

	c.logger.Debug("access evaluated",
		zap.Bool("granted", eval.Granted),
		zap.String("policy", decidedBy),
		zap.String("reason", eval.Reason),
		zap.Int("policies_evaluated", len(root.Children)),
		zap.Duration("duration", duration),
	)

	if len(c.observers) > 0 {
		event := Event{
			ID:       uuid.NewString(),
			Policy:   decidedBy,
			Granted:  eval.Granted,
			Reason:   eval.Reason,
			Trace:    root,
			Duration: duration,
			At:       time.Now().UTC(),
		}
		for _, o := range c.observers {
			o.ObserveEvaluation(ctx, event)
		}
	}

	return eval
}

// Package verify waits for the operators selected by the resolver to reach
// a healthy installed state.
package verify

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/blang/semver/v4"
	operatorsv1alpha1 "github.com/operator-framework/api/pkg/operators/v1alpha1"
	"golang.org/x/sync/errgroup"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/zdtsw-forking/odh-gitops/pkg/constants"
	"github.com/zdtsw-forking/odh-gitops/pkg/graph"
	"github.com/zdtsw-forking/odh-gitops/pkg/resolver"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/client"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/jq"
)

const (
	// DefaultInterval is the default poll interval.
	DefaultInterval = 5 * time.Second
	// DefaultTimeout is the default per-dependency wait budget.
	DefaultTimeout = 10 * time.Minute
)

// Status is the final observed state of one dependency's operator.
type Status struct {
	Dependency   string `json:"dependency"`
	Subscription string `json:"subscription"`
	Namespace    string `json:"namespace"`
	InstalledCSV string `json:"installedCSV,omitempty"`
	Version      string `json:"version,omitempty"`
}

// target is a dependency with enough install configuration to verify.
type target struct {
	dependency   string
	subscription string
	namespace    string
	minVersion   *semver.Version
}

// Verifier polls OLM until every installable dependency's operator reports
// a succeeded CSV, or the timeout elapses.
type Verifier struct {
	client   *client.Client
	interval time.Duration
	timeout  time.Duration
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithInterval sets the poll interval.
func WithInterval(interval time.Duration) Option {
	return func(v *Verifier) {
		v.interval = interval
	}
}

// WithTimeout sets the per-dependency wait budget.
func WithTimeout(timeout time.Duration) Option {
	return func(v *Verifier) {
		v.timeout = timeout
	}
}

// New creates a Verifier.
func New(c *client.Client, opts ...Option) *Verifier {
	v := &Verifier{
		client:   c,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Wait blocks until every installable dependency that carries a
// subscription in its install configuration reports a succeeded CSV.
// Dependencies are polled in parallel; the first failure cancels the rest.
// The returned statuses are sorted by dependency name.
func (v *Verifier) Wait(ctx context.Context, cfg *graph.Config, report *resolver.Report) ([]Status, error) {
	targets, err := collectTargets(cfg, report)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, len(targets))

	g, ctx := errgroup.WithContext(ctx)

	for i, tgt := range targets {
		g.Go(func() error {
			status, err := v.waitOne(ctx, tgt)
			if err != nil {
				return fmt.Errorf("verifying dependency %q: %w", tgt.dependency, err)
			}

			statuses[i] = *status

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Dependency < statuses[j].Dependency
	})

	return statuses, nil
}

// waitOne polls a single subscription until its installed CSV succeeds.
func (v *Verifier) waitOne(ctx context.Context, tgt target) (*Status, error) {
	var installed *operatorsv1alpha1.ClusterServiceVersion

	err := wait.PollUntilContextTimeout(ctx, v.interval, v.timeout, true, func(ctx context.Context) (bool, error) {
		subscription, err := v.client.OLM.OperatorsV1alpha1().
			Subscriptions(tgt.namespace).
			Get(ctx, tgt.subscription, metav1.GetOptions{})
		if err != nil {
			if client.IsUnrecoverableError(err) {
				return false, err
			}

			return false, nil
		}

		if subscription.Status.InstalledCSV == "" {
			return false, nil
		}

		csv, err := v.client.OLM.OperatorsV1alpha1().
			ClusterServiceVersions(tgt.namespace).
			Get(ctx, subscription.Status.InstalledCSV, metav1.GetOptions{})
		if err != nil {
			if client.IsUnrecoverableError(err) {
				return false, err
			}

			return false, nil
		}

		if csv.Status.Phase != operatorsv1alpha1.CSVPhaseSucceeded {
			return false, nil
		}

		installed = csv

		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for subscription %s/%s: %w", tgt.namespace, tgt.subscription, err)
	}

	installedVersion := installed.Spec.Version.Version

	if tgt.minVersion != nil && installedVersion.LT(*tgt.minVersion) {
		return nil, fmt.Errorf("installed version %s of %q is older than required minimum %s",
			installedVersion, tgt.dependency, tgt.minVersion)
	}

	return &Status{
		Dependency:   tgt.dependency,
		Subscription: tgt.subscription,
		Namespace:    tgt.namespace,
		InstalledCSV: installed.Name,
		Version:      installedVersion.String(),
	}, nil
}

// collectTargets extracts the verifiable dependencies from the report:
// installable ones whose install configuration names a subscription.
func collectTargets(cfg *graph.Config, report *resolver.Report) ([]target, error) {
	targets := make([]target, 0, len(report.Decisions))

	for _, decision := range report.Decisions {
		if !decision.Install {
			continue
		}

		install := cfg.Dependencies[decision.Name].Install
		if install == nil {
			continue
		}

		subscription, err := jq.Query[string](install, "."+constants.InstallKeySubscription)
		if err != nil {
			if errors.Is(err, jq.ErrNotFound) {
				continue
			}

			return nil, fmt.Errorf("reading install config of dependency %q: %w", decision.Name, err)
		}

		namespace, err := jq.Query[string](install, "."+constants.InstallKeyNamespace)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: install.subscription requires install.namespace: %w", decision.Name, err)
		}

		tgt := target{
			dependency:   decision.Name,
			subscription: subscription,
			namespace:    namespace,
		}

		minVersionRaw, err := jq.Query[string](install, "."+constants.InstallKeyMinVersion)
		if err != nil && !errors.Is(err, jq.ErrNotFound) {
			return nil, fmt.Errorf("reading minVersion of dependency %q: %w", decision.Name, err)
		}

		if minVersionRaw != "" {
			minVersion, err := semver.ParseTolerant(minVersionRaw)
			if err != nil {
				return nil, fmt.Errorf("invalid minVersion %q for dependency %q: %w", minVersionRaw, decision.Name, err)
			}

			tgt.minVersion = &minVersion
		}

		targets = append(targets, tgt)
	}

	return targets, nil
}

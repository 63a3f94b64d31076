package verify_test

import (
	"testing"
	"time"

	operatorsv1alpha1 "github.com/operator-framework/api/pkg/operators/v1alpha1"
	operatorfake "github.com/operator-framework/operator-lifecycle-manager/pkg/api/client/clientset/versioned/fake"

	"github.com/blang/semver/v4"
	opversion "github.com/operator-framework/api/pkg/lib/version"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/zdtsw-forking/odh-gitops/pkg/graph"
	"github.com/zdtsw-forking/odh-gitops/pkg/resolver"
	"github.com/zdtsw-forking/odh-gitops/pkg/util/client"
	"github.com/zdtsw-forking/odh-gitops/pkg/verify"

	. "github.com/onsi/gomega"
)

func newSubscription(name, namespace, installedCSV string) *operatorsv1alpha1.Subscription {
	return &operatorsv1alpha1.Subscription{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Status: operatorsv1alpha1.SubscriptionStatus{
			InstalledCSV: installedCSV,
		},
	}
}

func newCSV(name, namespace, v string, phase operatorsv1alpha1.ClusterServiceVersionPhase) *operatorsv1alpha1.ClusterServiceVersion {
	return &operatorsv1alpha1.ClusterServiceVersion{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Spec: operatorsv1alpha1.ClusterServiceVersionSpec{
			Version: opversion.OperatorVersion{Version: semver.MustParse(v)},
		},
		Status: operatorsv1alpha1.ClusterServiceVersionStatus{
			Phase: phase,
		},
	}
}

func certManagerConfig(install map[string]any) *graph.Config {
	return &graph.Config{
		Dependencies: map[string]graph.Dependency{
			"certManager": {
				Enabled: graph.EnableAlways,
				Install: install,
			},
		},
	}
}

func installedReport(names ...string) *resolver.Report {
	report := &resolver.Report{}
	for _, name := range names {
		report.Decisions = append(report.Decisions, resolver.Decision{
			Name:    name,
			Install: true,
			Reason:  resolver.ReasonEnabled,
		})
	}

	return report
}

func TestWait_Succeeded(t *testing.T) {
	g := NewWithT(t)
	ctx := t.Context()

	olm := operatorfake.NewSimpleClientset( //nolint:staticcheck // NewClientset requires generated apply configs not available in OLM
		newSubscription("cert-manager", "cert-manager-operator", "cert-manager.v1.13.0"),
		newCSV("cert-manager.v1.13.0", "cert-manager-operator", "1.13.0", operatorsv1alpha1.CSVPhaseSucceeded),
	)

	cfg := certManagerConfig(map[string]any{
		"subscription": "cert-manager",
		"namespace":    "cert-manager-operator",
	})

	verifier := verify.New(
		client.NewForTesting(client.TestClientConfig{OLM: olm}),
		verify.WithInterval(10*time.Millisecond),
		verify.WithTimeout(time.Second),
	)

	statuses, err := verifier.Wait(ctx, cfg, installedReport("certManager"))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(statuses).To(HaveLen(1))
	g.Expect(statuses[0].Dependency).To(Equal("certManager"))
	g.Expect(statuses[0].InstalledCSV).To(Equal("cert-manager.v1.13.0"))
	g.Expect(statuses[0].Version).To(Equal("1.13.0"))
}

func TestWait_TimesOutWithoutCSV(t *testing.T) {
	g := NewWithT(t)
	ctx := t.Context()

	olm := operatorfake.NewSimpleClientset( //nolint:staticcheck // NewClientset requires generated apply configs not available in OLM
		newSubscription("cert-manager", "cert-manager-operator", ""),
	)

	cfg := certManagerConfig(map[string]any{
		"subscription": "cert-manager",
		"namespace":    "cert-manager-operator",
	})

	verifier := verify.New(
		client.NewForTesting(client.TestClientConfig{OLM: olm}),
		verify.WithInterval(10*time.Millisecond),
		verify.WithTimeout(50*time.Millisecond),
	)

	_, err := verifier.Wait(ctx, cfg, installedReport("certManager"))
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring(`verifying dependency "certManager"`))
}

func TestWait_MinVersionTooOld(t *testing.T) {
	g := NewWithT(t)
	ctx := t.Context()

	olm := operatorfake.NewSimpleClientset( //nolint:staticcheck // NewClientset requires generated apply configs not available in OLM
		newSubscription("cert-manager", "cert-manager-operator", "cert-manager.v1.10.0"),
		newCSV("cert-manager.v1.10.0", "cert-manager-operator", "1.10.0", operatorsv1alpha1.CSVPhaseSucceeded),
	)

	cfg := certManagerConfig(map[string]any{
		"subscription": "cert-manager",
		"namespace":    "cert-manager-operator",
		"minVersion":   "1.12",
	})

	verifier := verify.New(
		client.NewForTesting(client.TestClientConfig{OLM: olm}),
		verify.WithInterval(10*time.Millisecond),
		verify.WithTimeout(time.Second),
	)

	_, err := verifier.Wait(ctx, cfg, installedReport("certManager"))
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("older than required minimum"))
}

func TestWait_SkipsDependenciesWithoutSubscription(t *testing.T) {
	g := NewWithT(t)
	ctx := t.Context()

	olm := operatorfake.NewSimpleClientset() //nolint:staticcheck // NewClientset requires generated apply configs not available in OLM

	cfg := certManagerConfig(map[string]any{
		"channel": "stable-v1",
	})

	verifier := verify.New(
		client.NewForTesting(client.TestClientConfig{OLM: olm}),
		verify.WithInterval(10*time.Millisecond),
		verify.WithTimeout(100*time.Millisecond),
	)

	statuses, err := verifier.Wait(ctx, cfg, installedReport("certManager"))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(statuses).To(BeEmpty())
}

func TestWait_FailedPhaseKeepsWaiting(t *testing.T) {
	g := NewWithT(t)
	ctx := t.Context()

	olm := operatorfake.NewSimpleClientset( //nolint:staticcheck // NewClientset requires generated apply configs not available in OLM
		newSubscription("cert-manager", "cert-manager-operator", "cert-manager.v1.13.0"),
		newCSV("cert-manager.v1.13.0", "cert-manager-operator", "1.13.0", operatorsv1alpha1.CSVPhaseFailed),
	)

	cfg := certManagerConfig(map[string]any{
		"subscription": "cert-manager",
		"namespace":    "cert-manager-operator",
	})

	verifier := verify.New(
		client.NewForTesting(client.TestClientConfig{OLM: olm}),
		verify.WithInterval(10*time.Millisecond),
		verify.WithTimeout(50*time.Millisecond),
	)

	_, err := verifier.Wait(ctx, cfg, installedReport("certManager"))
	g.Expect(err).To(HaveOccurred())
}

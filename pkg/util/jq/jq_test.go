package jq_test

import (
	"testing"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/zdtsw-forking/odh-gitops/pkg/util/jq"

	. "github.com/onsi/gomega"
)

func TestQuery_String(t *testing.T) {
	g := NewWithT(t)

	obj := &unstructured.Unstructured{
		Object: map[string]any{
			"spec": map[string]any{
				"components": map[string]any{
					"kueue": map[string]any{
						"managementState": "Managed",
					},
				},
			},
		},
	}

	value, err := jq.Query[string](obj, ".spec.components.kueue.managementState")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(value).To(Equal("Managed"))
}

func TestQuery_MissingPath(t *testing.T) {
	g := NewWithT(t)

	obj := &unstructured.Unstructured{
		Object: map[string]any{
			"spec": map[string]any{},
		},
	}

	_, err := jq.Query[string](obj, ".spec.components.kserve.managementState")
	g.Expect(err).To(MatchError(jq.ErrNotFound))
}

func TestQuery_TypeMismatch(t *testing.T) {
	g := NewWithT(t)

	obj := map[string]any{
		"count": 3.0,
	}

	_, err := jq.Query[string](obj, ".count")
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("type mismatch"))
}

func TestQuery_Map(t *testing.T) {
	g := NewWithT(t)

	obj := map[string]any{
		"dependencies": map[string]any{
			"certManager": true,
		},
	}

	deps, err := jq.Query[map[string]any](obj, ".dependencies")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(deps).To(HaveKeyWithValue("certManager", true))
}

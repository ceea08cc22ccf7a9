package policy

import (
	"reflect"
	"testing"

	"github.com/gh-nvat/gitops-releasegate/src/pkg/models"
)

func TestPolicyFor(t *testing.T) {
	tests := []struct {
		env    models.Environment
		want   Comparator
		wantOk bool
	}{
		{models.EnvDev, ComparatorAtLeast, true},
		{models.EnvSandbox, ComparatorCaret, true},
		{models.EnvProduction, ComparatorTilde, true},
		{models.Environment("staging"), "", false},
	}

	for _, tt := range tests {
		got, ok := PolicyFor(tt.env)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("PolicyFor(%q) = (%q, %v), want (%q, %v)", tt.env, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestEnvironmentsOrder(t *testing.T) {
	want := []models.Environment{models.EnvDev, models.EnvSandbox, models.EnvProduction}
	if got := Environments(); !reflect.DeepEqual(got, want) {
		t.Errorf("Environments() = %v, want %v", got, want)
	}
}

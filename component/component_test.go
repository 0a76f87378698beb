package component

import (
	"context"
	"testing"
)

type plainComponent struct{ name string }

func (p *plainComponent) Name() string                  { return p.name }
func (p *plainComponent) Start(context.Context) error   { return nil }
func (p *plainComponent) Stop(context.Context) error    { return nil }
func (p *plainComponent) Health(context.Context) Health { return Health{Name: p.name, Status: StatusHealthy} }

type describedComponent struct {
	plainComponent
	desc Description
}

func (d *describedComponent) Describe() Description { return d.desc }

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		c    Component
		want Description
	}{
		{"plain", &plainComponent{name: "ua"}, Description{Name: "ua"}},
		{
			"describable without name",
			&describedComponent{plainComponent{name: "ua"}, Description{Type: "useragent", Details: "x"}},
			Description{Name: "ua", Type: "useragent", Details: "x"},
		},
		{
			"describable with name",
			&describedComponent{plainComponent{name: "ua"}, Description{Name: "User Agent", Type: "useragent"}},
			Description{Name: "User Agent", Type: "useragent"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Describe(tc.c); got != tc.want {
				t.Errorf("Describe() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestHealthHealthy(t *testing.T) {
	if !(Health{Status: StatusHealthy}).Healthy() {
		t.Error("expected healthy")
	}
	if (Health{Status: StatusDegraded}).Healthy() {
		t.Error("degraded must not report healthy")
	}
}

package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/provkit/observability"
	"github.com/kbukum/provkit/provider"
)

// ProviderInfo is one provider line of the startup summary.
type ProviderInfo struct {
	Name     string
	Strategy string
	Current  bool
	Built    bool
}

// CategoryInfo is one category block of the startup summary.
type CategoryInfo struct {
	Name      string
	Providers []ProviderInfo
}

// Summary describes the registry state after startup.
type Summary struct {
	ServiceName     string
	Version         string
	StartupDuration time.Duration
	Categories      []CategoryInfo
	Health          observability.Health
}

// Collect snapshots r into a Summary.
func Collect(ctx context.Context, serviceName, version string, r *provider.Registry) *Summary {
	s := &Summary{ServiceName: serviceName, Version: version}
	for _, cat := range r.Categories() {
		info := CategoryInfo{Name: cat.Name()}
		current, _ := r.Current(cat.Contract())
		for _, p := range r.Providers(cat.Contract(), false) {
			info.Providers = append(info.Providers, ProviderInfo{
				Name:     p.Name(),
				Strategy: p.Strategy().String(),
				Current:  p == current,
				Built:    p.Materialized(),
			})
		}
		s.Categories = append(s.Categories, info)
	}
	s.Health = r.CheckHealth(ctx)
	return s
}

// Write renders the summary as a tree.
func (s *Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "\n%s %s started in %.2fs\n\n", s.ServiceName, s.Version, s.StartupDuration.Seconds())

	if len(s.Categories) == 0 {
		fmt.Fprintln(w, "No provider categories registered")
		return
	}
	fmt.Fprintln(w, "Providers")
	for i, cat := range s.Categories {
		prefix, indent := "├──", "│   "
		if i == len(s.Categories)-1 {
			prefix, indent = "└──", "    "
		}
		fmt.Fprintf(w, "   %s %s → %s\n", prefix, cat.Name, s.Health.Details[cat.Name])
		for j, p := range cat.Providers {
			branch := "├──"
			if j == len(cat.Providers)-1 {
				branch = "└──"
			}
			marks := p.Strategy
			if p.Current {
				marks += ", current"
			}
			if p.Built {
				marks += ", built"
			}
			fmt.Fprintf(w, "   %s%s %s (%s)\n", indent, branch, p.Name, marks)
		}
	}
	fmt.Fprintf(w, "\nRegistry %s: %s\n", s.Health.Status, s.Health.Message)
}

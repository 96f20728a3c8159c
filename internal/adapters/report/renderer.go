// Package report renders resolved class metadata for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/classmeta/internal/adapters/detector"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/classmeta/internal/ui/output"
	"go.trai.ch/classmeta/internal/ui/style"
	"go.trai.ch/zerr"
)

// Renderer writes reports to a single writer in one output mode.
type Renderer struct {
	w    io.Writer
	mode detector.OutputMode

	title   lipgloss.Style
	level   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// NewRenderer creates a Renderer. ModeAuto is resolved against the environment.
func NewRenderer(w io.Writer, mode detector.OutputMode) *Renderer {
	if mode == detector.ModeAuto {
		mode = detector.DetectEnvironment()
	}

	profile := termenv.Ascii
	if mode == detector.ModeStyled {
		profile = output.ColorProfileANSI()
	}
	lr := lipgloss.NewRenderer(w)
	lr.SetOutput(output.NewWithProfile(w, profile))
	lr.SetColorProfile(profile)

	return &Renderer{
		w:       w,
		mode:    mode,
		title:   lr.NewStyle().Bold(true).Foreground(style.Iris),
		level:   lr.NewStyle().Foreground(style.Iris),
		muted:   lr.NewStyle().Foreground(style.Slate),
		success: lr.NewStyle().Foreground(style.Green),
		failure: lr.NewStyle().Foreground(style.Red),
	}
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() detector.OutputMode {
	return r.mode
}

// RenderHierarchy writes the levels of h. A nil h is reported as absent.
func (r *Renderer) RenderHierarchy(class string, h domain.Hierarchy) error {
	if r.mode == detector.ModeJSON {
		return r.writeJSON(newHierarchyDoc(class, h))
	}

	var b strings.Builder
	if h == nil {
		fmt.Fprintf(&b, "%s %s  %s\n", r.failure.Render(style.Cross), r.title.Render(class), r.muted.Render("no metadata"))
		return r.flush(&b)
	}

	summary := fmt.Sprintf("%s, %d %s", h.Kind(), h.Len(), plural(h.Len(), "level", "levels"))
	fmt.Fprintf(&b, "%s %s  %s\n", r.success.Render(style.Check), r.title.Render(h.Name().String()), r.muted.Render(summary))

	for _, l := range h.Levels() {
		r.writeLevel(&b, style.Dot, l.Name().String(), l.Base(), true)
	}
	if m, ok := h.(*domain.MergeableHierarchyMetadata); ok && m.Len() > 1 {
		r.writeLevel(&b, style.Circle, "merged", m.Merged().ClassMetadata, false)
	}
	return r.flush(&b)
}

func (r *Renderer) writeLevel(b *strings.Builder, icon, name string, m *domain.ClassMetadata, withFiles bool) {
	fmt.Fprintf(b, "%s %s\n", r.level.Render(icon), r.level.Render(name))
	if m.Properties.Len() > 0 {
		fmt.Fprintf(b, "    %s\n", r.muted.Render("properties"))
		for _, p := range m.Properties.All() {
			r.writeMember(b, p.Name, p.Attributes)
		}
	}
	if m.Methods.Len() > 0 {
		fmt.Fprintf(b, "    %s\n", r.muted.Render("methods"))
		for _, mm := range m.Methods.All() {
			r.writeMember(b, mm.Name, mm.Attributes)
		}
	}
	if withFiles && len(m.FileResources) > 0 {
		fmt.Fprintf(b, "    %s\n", r.muted.Render("files"))
		for _, f := range m.FileResources {
			fmt.Fprintf(b, "      %s\n", f)
		}
	}
}

func (r *Renderer) writeMember(b *strings.Builder, name string, attrs map[string]string) {
	if len(attrs) == 0 {
		fmt.Fprintf(b, "      %s\n", name)
		return
	}
	fmt.Fprintf(b, "      %s  %s\n", name, r.muted.Render(formatAttributes(attrs)))
}

// RenderClassList writes one class name per line.
func (r *Renderer) RenderClassList(names []string) error {
	if r.mode == detector.ModeJSON {
		if names == nil {
			names = []string{}
		}
		return r.writeJSON(names)
	}

	var b strings.Builder
	for _, n := range names {
		b.WriteString(n)
		b.WriteByte('\n')
	}
	return r.flush(&b)
}

// RenderWarm writes the outcome of a cache warm-up.
func (r *Renderer) RenderWarm(stats domain.WarmStats) error {
	if r.mode == detector.ModeJSON {
		return r.writeJSON(newWarmDoc(stats))
	}

	var b strings.Builder
	icon := r.success.Render(style.Check)
	if len(stats.Failed) > 0 {
		icon = r.failure.Render(style.Cross)
	}
	fmt.Fprintf(&b, "%s warmed %d %s  %s\n",
		icon,
		stats.Classes,
		plural(stats.Classes, "class", "classes"),
		r.muted.Render(fmt.Sprintf("%d with metadata, %d absent, %d failed", stats.Resolved, stats.Absent, len(stats.Failed))),
	)
	for _, f := range stats.Failed {
		fmt.Fprintf(&b, "  %s %s\n", r.failure.Render(style.Cross), f)
	}
	return r.flush(&b)
}

// RenderEvicted writes the classes whose cache entries were removed.
func (r *Renderer) RenderEvicted(classes []string) error {
	if r.mode == detector.ModeJSON {
		if classes == nil {
			classes = []string{}
		}
		return r.writeJSON(map[string][]string{"evicted": classes})
	}

	var b strings.Builder
	for _, c := range classes {
		fmt.Fprintf(&b, "%s evicted %s\n", r.success.Render(style.Check), c)
	}
	return r.flush(&b)
}

func (r *Renderer) writeJSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	return nil
}

func (r *Renderer) flush(b *strings.Builder) error {
	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	return nil
}

func formatAttributes(attrs map[string]string) string {
	keys := slices.Sorted(maps.Keys(attrs))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+attrs[k])
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

// Style is the mutable visual state of the surface root.
type Style struct {
	Transition      string
	Transform       string
	TransformOrigin string
}

// CSS renders the non-empty properties as an inline declaration list.
func (s Style) CSS() string {
	var parts []string

	if s.Transition != "" {
		parts = append(parts, "transition: "+s.Transition)
	}

	if s.Transform != "" {
		parts = append(parts, "transform: "+s.Transform)
	}

	if s.TransformOrigin != "" {
		parts = append(parts, "transform-origin: "+s.TransformOrigin)
	}

	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, "; ") + ";"
}

// DefaultStyle matches the live preview, which eases between records.
var DefaultStyle = Style{Transition: "transform 0.3s ease"}

// Page is a laid out record ready to rasterize.
type Page struct {
	HTML   string
	Width  int
	Height int
}

// Surface is the single render target shared by the live preview and
// export. It holds the displayed record and the root style.
type Surface struct {
	views *Views

	mu      sync.Mutex
	record  *document.Record
	profile region.Profile
	style   Style
	ready   chan struct{}
	version uint64
}

func NewSurface(views *Views) *Surface {
	ready := make(chan struct{})
	close(ready)

	return &Surface{views: views, style: DefaultStyle, ready: ready}
}

// Show displays rec. The returned channel is closed once the new frame has
// been laid out; callers wait on it before capturing.
func (s *Surface) Show(rec document.Record, p region.Profile) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ready := make(chan struct{})
	s.ready = ready
	s.version++

	// Lay out once up front so a view error surfaces here, not at capture.
	if _, err := s.views.Render(rec, p, s.style); err != nil {
		close(ready)
		return ready, err
	}

	cp := rec.Clone()
	s.record = &cp
	s.profile = p
	close(ready)

	return ready, nil
}

// Ready returns the completion signal of the most recent Show.
func (s *Surface) Ready() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ready
}

// Current returns the displayed record, if any.
func (s *Surface) Current() (document.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record == nil {
		return document.Record{}, false
	}

	return s.record.Clone(), true
}

// Version increases on every Show.
func (s *Surface) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.version
}

func (s *Surface) Style() Style {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.style
}

func (s *Surface) SetStyle(st Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.style = st
}

// Page lays out the displayed record with the current style.
func (s *Surface) Page() (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record == nil {
		return Page{}, fmt.Errorf("render surface is empty")
	}

	html, err := s.views.Render(*s.record, s.profile, s.style)
	if err != nil {
		return Page{}, err
	}

	size := SizeOf(s.record.Kind)

	return Page{HTML: html, Width: size.Width, Height: size.Height}, nil
}

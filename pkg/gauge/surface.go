package gauge

// Target names one drawable element of a gauge.
type Target string

const (
	TargetBackgroundArc Target = "background-arc"
	TargetArc           Target = "arc"
	TargetNumeric       Target = "numeric"
	TargetTitle         Target = "title"
	TargetSubtitle      Target = "subtitle"
)

// Targets lists every draw target in paint order.
var Targets = []Target{TargetTitle, TargetBackgroundArc, TargetArc, TargetNumeric, TargetSubtitle}

type Size struct {
	Width, Height float64
}

// DrawSurface is whatever renders a gauge. The controller never reads back
// what it wrote; only the container size flows from the surface.
type DrawSurface interface {
	SetPath(t Target, d string)
	SetText(t Target, text string)
	SetVisible(t Target, visible bool)
	ContainerSize() Size
}

// Recorder is an in-memory DrawSurface.
type Recorder struct {
	Size    Size
	Paths   map[Target]string
	Texts   map[Target]string
	Visible map[Target]bool

	// OnCall, if set, runs after every surface call.
	OnCall func(op string, t Target)
}

func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		Size:    Size{Width: width, Height: height},
		Paths:   make(map[Target]string),
		Texts:   make(map[Target]string),
		Visible: make(map[Target]bool),
	}
}

func (r *Recorder) SetPath(t Target, d string) {
	r.Paths[t] = d
	r.called("path", t)
}

func (r *Recorder) SetText(t Target, text string) {
	r.Texts[t] = text
	r.called("text", t)
}

func (r *Recorder) SetVisible(t Target, visible bool) {
	r.Visible[t] = visible
	r.called("visible", t)
}

func (r *Recorder) ContainerSize() Size { return r.Size }

func (r *Recorder) called(op string, t Target) {
	if r.OnCall != nil {
		r.OnCall(op, t)
	}
}

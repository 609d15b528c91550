package sh

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/robotalks/vxclone/pkg/clone"
	"github.com/robotalks/vxclone/pkg/image"
)

// progressBar renders clone.Progress, created on the first segment so
// the operator prompt isn't overwritten.
type progressBar struct {
	w     io.Writer
	bar   *progressbar.ProgressBar
	state clone.State
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{w: w}
}

func (p *progressBar) Update(prog clone.Progress) {
	if p.bar == nil {
		if prog.Segment == 0 {
			return
		}
		p.bar = progressbar.NewOptions(image.Size,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}
	if prog.State != p.state {
		p.state = prog.State
		p.bar.Describe(fmt.Sprintf("%s %s", prog.Direction, prog.State))
	}
	p.bar.Set(prog.Done)
}

func (p *progressBar) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		fmt.Fprintln(p.w)
	}
}

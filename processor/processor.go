// Package processor implements the clipboard handler run by cp-master.
package processor

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/DoumanAsh/clipboard-master/master"
	"github.com/DoumanAsh/clipboard-master/process/magnet"
	"github.com/DoumanAsh/clipboard-master/process/trim"
)

// Clipboard is the text clipboard the processor works on.
type Clipboard interface {
	ReadText() (text string, ok bool, err error)
	WriteText(text string) error
}

// Options configures a Processor.
type Options struct {
	// Magnet enables launching the torrent client for magnet URIs.
	Magnet bool
	// Interval is returned from SleepInterval. Zero selects master.DefaultSleepInterval.
	Interval time.Duration
	// Out receives the progress lines. Defaults to os.Stdout.
	Out io.Writer
}

// Processor reacts to clipboard changes by launching magnet URIs or trimming text.
type Processor struct {
	clip   Clipboard
	opts   Options
	launch func(uri string) error
	fatalf func(format string, args ...any)
}

var _ master.Handler = (*Processor)(nil)

// New returns a Processor working on clip.
func New(clip Clipboard, opts Options) *Processor {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Interval <= 0 {
		opts.Interval = master.DefaultSleepInterval
	}
	return &Processor{
		clip:   clip,
		opts:   opts,
		launch: magnet.Run,
		fatalf: log.Fatalf,
	}
}

// OnClipboardChange never stops the watcher. Failures are reported and the
// next change is awaited.
func (p *Processor) OnClipboardChange() master.Result {
	content, ok, err := p.clip.ReadText()
	if err != nil {
		p.report("Failed to get clipboard content. Error: %v", err)
		return master.Continue
	}
	if !ok {
		log.Printf("processor: clipboard holds no text")
		return master.Continue
	}
	log.Printf("processor: clipboard changed, %d bytes of text", len(content))

	if p.opts.Magnet && magnet.IsApplicable(content) {
		p.report(">>>Run torrent client on uri: %s", content)
		if err := p.launch(content); err != nil {
			p.fatalf("Unable to start torrent client: %v", err)
		}
		return master.Continue
	}

	trimmed, changed := trim.Lines(content)
	if !changed {
		return master.Continue
	}
	if err := p.clip.WriteText(trimmed); err != nil {
		p.report("Failed to set clipboard content. Error: %v", err)
		return master.Continue
	}
	p.report(">>>Trimmed clipboard")
	return master.Continue
}

func (p *Processor) OnClipboardError(err error) master.Result {
	p.report("Error: %v", err)
	return master.Continue
}

func (p *Processor) SleepInterval() time.Duration {
	return p.opts.Interval
}

func (p *Processor) report(format string, args ...any) {
	fmt.Fprintf(p.opts.Out, format+"\n", args...)
}

// Copyright 2025 Steve Anthony
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"sync"

	"github.com/pterm/pterm"
	"github.com/steveant/mgit/pkg/events"
)

// 📈 Progress renders a terminal progress bar over the run, advancing one
// tick per terminal repository event
type Progress struct {
	mu  sync.Mutex
	bar *pterm.ProgressbarPrinter
}

// 🏭 NewProgress creates a progress-bar subscriber
func NewProgress() *Progress {
	return &Progress{}
}

// 🔌 Attach subscribes the progress bar to the bus
func (p *Progress) Attach(bus *events.Bus) {
	bus.Subscribe(events.KindBulkStarted, p.handle)
	bus.Subscribe(events.KindBulkCompleted, p.handle)
	bus.Subscribe(events.KindRepoCompleted, p.handle)
	bus.Subscribe(events.KindRepoFailed, p.handle)
	bus.Subscribe(events.KindRepoSkipped, p.handle)
}

func (p *Progress) handle(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev := e.(type) {
	case events.BulkStarted:
		bar, err := pterm.DefaultProgressbar.
			WithTotal(ev.Total).
			WithTitle(ev.Operation).
			Start()
		if err == nil {
			p.bar = bar
		}
	case events.BulkCompleted:
		if p.bar != nil {
			p.bar.Stop()
			p.bar = nil
		}
	case events.RepoCompleted:
		p.tick(ev.Repo)
	case events.RepoFailed:
		p.tick(ev.Repo)
	case events.RepoSkipped:
		p.tick(ev.Repo)
	}
}

func (p *Progress) tick(repo string) {
	if p.bar == nil {
		return
	}
	p.bar.UpdateTitle(repo)
	p.bar.Increment()
}

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

// Package report contains the event-bus subscribers that render progress
// and record metrics for a bulk run. Nothing in here is imported by the
// orchestrator; the bus is the only coupling.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/steveant/mgit/pkg/bulk"
	"github.com/steveant/mgit/pkg/events"
)

// 🎨 Display configuration
const (
	nameWidth = 35 // base width for repository name
)

// 🖥️ Console renders one line per repository outcome, plus a run summary
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool // also print progress milestones
}

// 🏭 NewConsole creates a console reporter writing to out
func NewConsole(out io.Writer, verbose bool) *Console {
	return &Console{out: out, verbose: verbose}
}

// 🔌 Attach subscribes the reporter to the bus
func (c *Console) Attach(bus *events.Bus) {
	bus.SubscribeAll(c.handle)
}

func (c *Console) handle(e events.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev := e.(type) {
	case events.BulkStarted:
		fmt.Fprintf(c.out, "[%s %s]\n",
			color.New(color.Bold).Sprint(ev.Operation),
			color.New(color.FgCyan).Sprintf("%s (%d repositories)", ev.Project, ev.Total))
	case events.RepoProgress:
		if c.verbose {
			fmt.Fprintf(c.out, "  %s %s\n",
				color.New(color.Faint).Sprint("…"),
				color.New(color.Faint).Sprintf("%s: %s", ev.Repo, ev.Message))
		}
	case events.RepoCompleted:
		c.line(color.FgGreen, '✓', ev.Repo, "")
	case events.RepoFailed:
		c.line(color.FgRed, '✗', ev.Repo, ev.Error)
	case events.RepoSkipped:
		c.line(color.FgYellow, '-', ev.Repo, ev.Reason)
	}
}

// 📝 line prints one aligned outcome row
func (c *Console) line(attr color.Attribute, symbol rune, name, detail string) {
	if detail != "" {
		detail = color.New(color.Faint).Sprintf("(%s)", detail)
	}
	fmt.Fprintf(c.out, "  %s %s %s\n",
		color.New(attr).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, name),
		detail)
}

// 📊 Summary prints the aggregate counts and the itemized error list
func (c *Console) Summary(res bulk.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "%s %d total, %s, %s, %s\n",
		color.New(color.Bold).Sprint("done:"),
		res.Total,
		color.New(color.FgGreen).Sprintf("%d succeeded", res.Succeeded),
		color.New(color.FgRed).Sprintf("%d failed", res.Failed),
		color.New(color.FgYellow).Sprintf("%d skipped", res.Skipped))

	for _, opErr := range res.Errors {
		fmt.Fprintf(c.out, "  %s %s %s: %s\n",
			color.New(color.FgRed).Sprint("✗"),
			opErr.Repo,
			opErr.Kind,
			opErr.Message)
	}
}

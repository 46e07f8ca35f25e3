/*
	MineDraft, renderer for block game maps
	Copyright (C) 2022 Maxim Zhuchkov

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Contact me via mail: q3.max.2011@yandex.ru or Discord: MaX#6717
*/

package main

import (
	"sync"
	"time"
)

type ProgressReport struct {
	RunID     string  `json:"run"`
	Stage     string  `json:"stage"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	ETA       int64   `json:"eta"`
	Speed     float64 `json:"speed"`
	Done      bool    `json:"done"`
}

// ProgressBroadcaster fans progress reports out to websocket clients.
// Slow subscribers miss reports instead of stalling the render.
type ProgressBroadcaster struct {
	stopCh    chan struct{}
	publishCh chan ProgressReport
	subCh     chan chan ProgressReport
	unsubCh   chan chan ProgressReport

	lastLock sync.Mutex
	last     ProgressReport
}

func NewBroadcaster() *ProgressBroadcaster {
	return &ProgressBroadcaster{
		stopCh:    make(chan struct{}),
		publishCh: make(chan ProgressReport, 1),
		subCh:     make(chan chan ProgressReport, 1),
		unsubCh:   make(chan chan ProgressReport, 1),
	}
}

func (b *ProgressBroadcaster) Start(exitchan <-chan struct{}) {
	subs := map[chan ProgressReport]struct{}{}
	for {
		select {
		case <-exitchan:
			close(b.stopCh)
			return
		case msgCh := <-b.subCh:
			subs[msgCh] = struct{}{}
			msgCh <- b.Last()
		case msgCh := <-b.unsubCh:
			delete(subs, msgCh)
		case msg := <-b.publishCh:
			for msgCh := range subs {
				select {
				case msgCh <- msg:
				default:
				}
			}
		}
	}
}

func (b *ProgressBroadcaster) Subscribe() chan ProgressReport {
	msgCh := make(chan ProgressReport, 16)
	select {
	case b.subCh <- msgCh:
	case <-b.stopCh:
	}
	return msgCh
}

func (b *ProgressBroadcaster) Unsubscribe(msgCh chan ProgressReport) {
	select {
	case b.unsubCh <- msgCh:
	case <-b.stopCh:
	}
}

func (b *ProgressBroadcaster) Publish(msg ProgressReport) {
	b.lastLock.Lock()
	b.last = msg
	b.lastLock.Unlock()
	select {
	case b.publishCh <- msg:
	case <-b.stopCh:
	}
}

func (b *ProgressBroadcaster) Last() ProgressReport {
	b.lastLock.Lock()
	defer b.lastLock.Unlock()
	return b.last
}

// progressTracker turns pipeline callbacks into reports with speed and
// a naive ETA.
type progressTracker struct {
	b       *ProgressBroadcaster
	runID   string
	started time.Time
}

func newProgressTracker(b *ProgressBroadcaster, runID string) *progressTracker {
	return &progressTracker{b: b, runID: runID, started: time.Now()}
}

// report publishes progress of a stage. Only finish marks the run
// done, a completed stage is not the end of the run.
func (t *progressTracker) report(stage string, done, total int) {
	t.publish(stage, done, total, false)
}

// finish publishes the last stage's result with Done set.
func (t *progressTracker) finish(stage string, done, total int) {
	t.publish(stage, done, total, true)
}

func (t *progressTracker) publish(stage string, done, total int, last bool) {
	r := ProgressReport{
		RunID:     t.runID,
		Stage:     stage,
		Total:     total,
		Completed: done,
		ETA:       -1,
		Speed:     -1,
		Done:      last,
	}
	if el := time.Since(t.started).Seconds(); el > 0 && done > 0 {
		r.Speed = float64(done) / el
		r.ETA = int64(float64(total-done) / r.Speed)
	}
	t.b.Publish(r)
}

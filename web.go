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
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/maxsupermanhd/minedraft/imageOutput"
	"github.com/shirou/gopsutil/mem"
)

// runState is what the status server shows about the current run.
type runState struct {
	lock    sync.Mutex
	id      string
	started time.Time
	outputs map[string]imageOutput.Result
	b       *ProgressBroadcaster
}

func newRunState(id string, b *ProgressBroadcaster) *runState {
	return &runState{id: id, started: time.Now(), outputs: map[string]imageOutput.Result{}, b: b}
}

func (s *runState) addOutputs(res []imageOutput.Result) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, r := range res {
		s.outputs[r.Name] = r
	}
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func (s *runState) statusHandler(w http.ResponseWriter, r *http.Request) {
	type outputInfo struct {
		Name   string `json:"name"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Size   string `json:"size"`
	}
	ret := map[string]any{
		"run":      s.id,
		"version":  versionString(),
		"started":  s.started,
		"uptime":   time.Since(s.started).Round(time.Second).String(),
		"progress": s.b.Last(),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		ret["memory"] = map[string]string{
			"used":  humanize.Bytes(vm.Used),
			"total": humanize.Bytes(vm.Total),
		}
	}
	outs := []outputInfo{}
	s.lock.Lock()
	for _, o := range s.outputs {
		outs = append(outs, outputInfo{Name: o.Name, Width: o.Width, Height: o.Height, Size: humanize.Bytes(uint64(o.Size))})
	}
	s.lock.Unlock()
	ret["outputs"] = outs
	respondJSON(w, http.StatusOK, ret)
}

// outputHandler serves only images this run has written.
func (s *runState) outputHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	s.lock.Lock()
	o, ok := s.outputs[name]
	s.lock.Unlock()
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "no such output"})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, o.Path)
}

func createRouter(s *runState, exitchan <-chan struct{}) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/", s.statusHandler).Methods("GET")
	router.HandleFunc("/outputs/{name:.+}", s.outputHandler).Methods("GET")
	router.HandleFunc("/colours", coloursHandler).Methods("GET")
	router.HandleFunc("/api/v1/ws", wsProgressHandler(s.b, exitchan))

	router1 := handlers.ProxyHeaders(router)
	router2 := handlers.CompressHandler(router1)
	router3 := handlers.CustomLoggingHandler(os.Stdout, router2, customLogger)
	router4 := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(router3)
	return router4
}

func runWeb(addr string, s *runState) func(exitchan <-chan struct{}) {
	return func(exitchan <-chan struct{}) {
		websrv := http.Server{
			Addr:    addr,
			Handler: createRouter(s, exitchan),
		}
		log.Println("Web server listens on " + addr)
		go func() {
			if err := websrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("Web server returned an error: %s", err)
			}
		}()
		<-exitchan
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := websrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web server shutdown failed: %v", err)
		}
	}
}

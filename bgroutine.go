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
	"log"
	"sync"
)

// startBackgroundRoutine runs workfn until the returned stop function
// is called. Stop closes the exit channel and waits for workfn.
func startBackgroundRoutine(name string, workfn func(exitchan <-chan struct{})) (stop func()) {
	log.Printf("Starting %s routine", name)
	exitchan := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		workfn(exitchan)
	}()
	return sync.OnceFunc(func() {
		close(exitchan)
		wg.Wait()
		log.Printf("Routine %s stopped", name)
	})
}
